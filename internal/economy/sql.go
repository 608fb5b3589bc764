package economy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// BalanceModel represents the balances table
type BalanceModel struct {
	Player    string    `gorm:"column:player;primaryKey"`
	Amount    float64   `gorm:"column:amount;not null;default:0"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (BalanceModel) TableName() string {
	return "balances"
}

// SQLLedger stores balances in a SQL database through gorm.
type SQLLedger struct {
	Formatter

	db     *gorm.DB
	logger *slog.Logger
}

var _ Ledger = (*SQLLedger)(nil)

// OpenSQLite opens (or creates) a SQLite ledger. Use ":memory:" for a
// throwaway database.
func OpenSQLite(path string, f Formatter, log *slog.Logger) (*SQLLedger, error) {
	if path == "" {
		path = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows one writer; a single connection also keeps ":memory:"
	// databases from being recreated per connection.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return NewSQLLedger(db, f, log)
}

// NewSQLLedger wraps an open database, creating the balances table if needed.
func NewSQLLedger(db *gorm.DB, f Formatter, log *slog.Logger) (*SQLLedger, error) {
	if err := db.AutoMigrate(&BalanceModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate balances: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &SQLLedger{Formatter: f, db: db, logger: log}, nil
}

func (s *SQLLedger) Enabled() bool { return true }

func (s *SQLLedger) Balance(ctx context.Context, player string) (float64, error) {
	var model BalanceModel
	result := s.db.WithContext(ctx).Where("player = ?", player).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read balance: %w", result.Error)
	}
	return model.Amount, nil
}

func (s *SQLLedger) Modify(ctx context.Context, player string, delta float64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model BalanceModel
		result := tx.Where("player = ?", player).First(&model)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return tx.Create(&BalanceModel{Player: player, Amount: delta}).Error
		}
		if result.Error != nil {
			return result.Error
		}
		return tx.Model(&model).Update("amount", gorm.Expr("amount + ?", delta)).Error
	})
	if err != nil {
		s.logger.Error("Failed to modify balance", "player", player, "delta", delta, "error", err)
		return fmt.Errorf("failed to modify balance: %w", err)
	}
	return nil
}

func (s *SQLLedger) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying db: %w", err)
	}
	return sqlDB.Close()
}
