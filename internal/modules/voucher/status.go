package voucher

import (
	"github.com/qmuntal/stateless"

	"vales/internal/domain"
)

const (
	triggerApprove = "approve"
	triggerReject  = "reject"
)

// nextStatus runs the voucher lifecycle machine: pending can be approved or
// rejected, decided vouchers accept no trigger.
func nextStatus(current domain.VoucherStatus, trigger string) (domain.VoucherStatus, error) {
	machine := stateless.NewStateMachine(current)

	machine.Configure(domain.VoucherPending).
		Permit(triggerApprove, domain.VoucherApproved).
		Permit(triggerReject, domain.VoucherRejected)
	machine.Configure(domain.VoucherApproved)
	machine.Configure(domain.VoucherRejected)

	if ok, _ := machine.CanFire(trigger); !ok {
		return current, ErrAlreadyDecided
	}
	if err := machine.Fire(trigger); err != nil {
		return current, ErrAlreadyDecided
	}
	return machine.MustState().(domain.VoucherStatus), nil
}
