package database

import (
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"vales/internal/domain"
)

func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Connect opens PostgreSQL for postgres:// URLs and SQLite (pure Go driver)
// for anything else.
func Connect(dsn string, log *zap.SugaredLogger) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	if IsPostgres(dsn) {
		log.Infow("connecting to PostgreSQL")
		db, err := gorm.Open(postgres.Open(dsn), cfg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		return db, nil
	}

	log.Infow("using SQLite", "dsn", dsn)
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
	if err != nil {
		return nil, err
	}

	// SQLite allows one writer; a single connection serialises transactions
	// instead of failing them with SQLITE_BUSY.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Voucher{},
		&domain.DailyCounter{},
	)
}
