package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"vales/internal/config"
	"vales/internal/database"
	"vales/internal/domain"
	"vales/internal/modules/voucher"
	"vales/internal/pkg/logger"
	"vales/internal/repository"
)

const seedDays = 14

var locals = []string{"Providencia", "Ñuñoa", "Las Condes"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ctx := context.Background()

	db, err := database.Connect(cfg.DatabaseURL, logger.New(true))
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("migrate failed:", err)
	}

	log.Println("Cleaning old data...")
	for _, table := range []string{"vouchers", "daily_counters", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("clean %s: %v", table, err)
		}
	}

	userRepo := repository.NewUserRepository(db)
	voucherRepo := repository.NewVoucherRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")
	mkUser := func(email, name, password string, role domain.UserRole, local string) *domain.User {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal(err)
		}
		u := &domain.User{Email: email, PasswordHash: string(hash), Name: name, Role: role, Local: local, Active: true}
		if err := userRepo.Create(ctx, u); err != nil {
			log.Fatalf("create %s: %v", email, err)
		}
		return u
	}

	admin := mkUser("admin@vales.cl", "Administración", "admin123", domain.RoleAdmin, locals[0])
	hosts := make([]*domain.User, 0, len(locals))
	for i, local := range locals {
		hosts = append(hosts, mkUser(fmt.Sprintf("anfitrion%d@vales.cl", i+1), "Anfitrión "+local, "host123", domain.RoleAnfitrion, local))
	}

	staff := []*domain.User{
		mkUser("diego@vales.cl", "Diego Rojas", "staff123", domain.RoleBarbero, locals[0]),
		mkUser("camila@vales.cl", "Camila Muñoz", "staff123", domain.RoleEstilista, locals[0]),
		mkUser("javiera@vales.cl", "Javiera Soto", "staff123", domain.RoleManicurista, locals[1]),
		mkUser("matias@vales.cl", "Matías Pérez", "staff123", domain.RoleBarbero, locals[1]),
		mkUser("fernanda@vales.cl", "Fernanda Díaz", "staff123", domain.RoleColorista, locals[2]),
	}

	// ================== VOUCHERS ==================
	log.Println("Creating vouchers...")
	services := []string{"Corte", "Corte y barba", "Perfilado de barba", "Manicure", "Tintura", "Brushing"}
	expenses := []string{"Adelanto", "Almuerzo", "Insumos", "Locomoción"}
	splits := []int{100, 50, 45}

	today := time.Now().In(cfg.BusinessTZ)
	created := 0
	for d := seedDays - 1; d >= 0; d-- {
		day := today.AddDate(0, 0, -d).Format(voucher.DayLayout)

		for _, u := range staff {
			n := 2 + rng.Intn(4)
			for i := 0; i < n; i++ {
				v := &domain.Voucher{
					Kind:          domain.KindService,
					Amount:        decimal.NewFromInt(int64(5+rng.Intn(30)) * 1000),
					Description:   services[rng.Intn(len(services))],
					PaymentMethod: domain.PaymentMethods[rng.Intn(len(domain.PaymentMethods))],
					UserID:        u.ID,
					UserName:      u.Name,
					Local:         u.Local,
					Status:        domain.VoucherPending,
					Day:           day,
				}
				if rng.Intn(5) == 0 {
					v.Kind = domain.KindExpense
					v.Amount = decimal.NewFromInt(int64(1+rng.Intn(10)) * 1000)
					v.Description = expenses[rng.Intn(len(expenses))]
					v.PaymentMethod = ""
				}
				if err := voucherRepo.Create(ctx, v); err != nil {
					log.Fatalf("create voucher: %v", err)
				}
				created++

				// today's vouchers stay pending so the approval queue has content
				if d == 0 && rng.Intn(2) == 0 {
					continue
				}
				decide(ctx, voucherRepo, v, hostFor(hosts, admin, u.Local), rng, splits)
			}
		}
	}

	log.Printf("Seed completed: users=%d vouchers=%d", 1+len(hosts)+len(staff), created)
	log.Println("Test accounts:")
	log.Println("Admin: admin@vales.cl / admin123")
	log.Println("Hosts: anfitrion1@vales.cl ... anfitrion3@vales.cl / host123")
	log.Println("Staff: diego@vales.cl, camila@vales.cl, ... / staff123")
}

func hostFor(hosts []*domain.User, fallback *domain.User, local string) *domain.User {
	for _, h := range hosts {
		if h.Local == local {
			return h
		}
	}
	return fallback
}

func decide(ctx context.Context, repo *repository.VoucherRepository, v *domain.Voucher, by *domain.User, rng *rand.Rand, splits []int) {
	d := repository.Decision{
		Status:       domain.VoucherApproved,
		ApprovedByID: by.ID,
		ApprovedBy:   by.Name,
		DecidedAt:    time.Now().UTC(),
	}
	if rng.Intn(10) == 0 {
		d.Status = domain.VoucherRejected
		d.Observation = "Monto no corresponde"
	} else {
		bonus := decimal.Zero
		if rng.Intn(6) == 0 {
			bonus = decimal.NewFromInt(int64(1+rng.Intn(3)) * 1000)
		}
		d.Bonus = &bonus
		if v.Kind == domain.KindService {
			split := splits[rng.Intn(len(splits))]
			d.SplitPercent = &split
		}
	}

	if _, err := repo.Decide(ctx, v.ID, d); err != nil {
		log.Fatalf("decide %s: %v", v.Code, err)
	}
}
