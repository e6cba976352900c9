package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// VehicleStock adapts the product catalog's stock table to the
// StockDecrementer capability the completion transition consumes.
type VehicleStock struct{ db *gorm.DB }

func NewVehicleStock(db *gorm.DB) *VehicleStock { return &VehicleStock{db: db} }

// DecrementStock takes one unit off the vehicle, guarded against going
// negative.
func (s *VehicleStock) DecrementStock(ctx context.Context, vehicleID string) error {
	res := s.db.WithContext(ctx).
		Table("vehicles").
		Where("vehicle_id = ? AND stock > 0", vehicleID).
		UpdateColumn("stock", gorm.Expr("stock - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("vehicle %s: no stock to decrement", vehicleID)
	}
	return nil
}
