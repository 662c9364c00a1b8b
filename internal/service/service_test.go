package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/muhsinkalodi/qmexai-ecom/internal/model"
	"github.com/muhsinkalodi/qmexai-ecom/pkg/config"
	"github.com/muhsinkalodi/qmexai-ecom/pkg/jwtutil"
)

// newTestDB opens a private in-memory database migrated with all models.
// The shared cache keeps the database alive across pooled connections.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Product{}, &model.Order{}, &model.OrderItem{}))
	return db
}

func newTestIssuer(expireMinutes int) *jwtutil.Issuer {
	return jwtutil.New(&config.JWTConfig{
		SecretKey:     "test-secret",
		ExpireMinutes: expireMinutes,
	})
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *model.Product {
	t.Helper()

	product := model.Product{
		Name:          name,
		Category:      "Men",
		MRP:           price,
		DiscountPrice: price,
		Stock:         stock,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func seedUser(t *testing.T, db *gorm.DB, email string, isAdmin bool) *model.User {
	t.Helper()

	user := model.User{
		Email:          email,
		HashedPassword: "x",
		IsAdmin:        isAdmin,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}
