// Package seed заполняет пустую базу начальными данными ресторана.
// Повторный запуск ничего не дублирует.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	userRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ReservationService/pkg/password"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

type TableRepository interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, t *domain.Table) (*domain.Table, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type MenuRepository interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error)
}

type Logger interface {
	Info(format string, v ...interface{})
}

// Account учётная запись, создаваемая при заполнении
type Account struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      domain.UserRole
}

// DefaultTableSeats зал по умолчанию: 9 столов на 38 мест
var DefaultTableSeats = []int{2, 2, 2, 4, 4, 4, 6, 6, 8}

// DefaultAccounts администратор и тестовый клиент
var DefaultAccounts = []Account{
	{Email: "admin@restaurant.com", Password: "admin123", FirstName: "Admin", LastName: "Restaurant", Role: domain.RoleAdmin},
	{Email: "client@example.com", Password: "client123", FirstName: "Jean", LastName: "Dupont", Role: domain.RoleClient},
}

// DefaultMenu начальное меню
var DefaultMenu = []domain.MenuItem{
	{Name: "Soupe à l'oignon", Description: ptr.Ptr("Soupe gratinée au fromage"), Price: 8.5, Category: "entrées"},
	{Name: "Salade niçoise", Description: ptr.Ptr("Thon, œuf, olives, anchois"), Price: 11, Category: "entrées"},
	{Name: "Escargots de Bourgogne", Description: ptr.Ptr("Six escargots au beurre persillé"), Price: 12, Category: "entrées"},
	{Name: "Bœuf bourguignon", Description: ptr.Ptr("Bœuf mijoté au vin rouge"), Price: 22, Category: "plats"},
	{Name: "Coq au vin", Description: ptr.Ptr("Poulet braisé, champignons, lardons"), Price: 19.5, Category: "plats"},
	{Name: "Ratatouille", Description: ptr.Ptr("Légumes du soleil confits"), Price: 15, Category: "plats"},
	{Name: "Crème brûlée", Description: ptr.Ptr("Crème vanillée caramélisée"), Price: 7, Category: "desserts"},
	{Name: "Tarte Tatin", Description: ptr.Ptr("Tarte aux pommes caramélisées"), Price: 8, Category: "desserts"},
	{Name: "Mousse au chocolat", Description: ptr.Ptr("Chocolat noir 70%"), Price: 6.5, Category: "desserts"},
	{Name: "Vin rouge (verre)", Description: ptr.Ptr("Côtes du Rhône"), Price: 6, Category: "boissons"},
	{Name: "Eau minérale", Description: ptr.Ptr("50 cl"), Price: 3, Category: "boissons"},
	{Name: "Café", Description: ptr.Ptr("Expresso"), Price: 2.5, Category: "boissons"},
}

// Seeder заполняет столы, пользователей и меню
type Seeder struct {
	tables     TableRepository
	users      UserRepository
	menu       MenuRepository
	bcryptCost int
	logger     Logger
}

func NewSeeder(tables TableRepository, users UserRepository, menu MenuRepository, bcryptCost int, logger Logger) *Seeder {
	return &Seeder{
		tables:     tables,
		users:      users,
		menu:       menu,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Run заполняет только пустые разделы
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedTables(ctx); err != nil {
		return err
	}
	if err := s.seedAccounts(ctx); err != nil {
		return err
	}
	return s.seedMenu(ctx)
}

func (s *Seeder) seedTables(ctx context.Context) error {
	count, err := s.tables.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed tables: %w", err)
	}
	if count > 0 {
		s.logger.Info("Tables already present (%d), skipping", count)
		return nil
	}

	for _, seats := range DefaultTableSeats {
		if _, err := s.tables.Create(ctx, &domain.Table{Seats: seats}); err != nil {
			return fmt.Errorf("seed tables: %w", err)
		}
	}
	s.logger.Info("Created %d tables", len(DefaultTableSeats))
	return nil
}

func (s *Seeder) seedAccounts(ctx context.Context) error {
	for _, acc := range DefaultAccounts {
		_, err := s.users.GetByEmail(ctx, acc.Email)
		if err == nil {
			s.logger.Info("User %s already exists, skipping", acc.Email)
			continue
		}
		if !errors.Is(err, userRepo.ErrUserNotFound) {
			return fmt.Errorf("seed users: %w", err)
		}

		hash, err := password.Hash(acc.Password, s.bcryptCost)
		if err != nil {
			return fmt.Errorf("seed users: %w", err)
		}

		_, err = s.users.Create(ctx, &domain.User{
			Email:        acc.Email,
			PasswordHash: hash,
			FirstName:    ptr.Ptr(acc.FirstName),
			LastName:     ptr.Ptr(acc.LastName),
			Role:         acc.Role,
		})
		if err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		s.logger.Info("Created user %s (role=%s)", acc.Email, acc.Role)
	}
	return nil
}

func (s *Seeder) seedMenu(ctx context.Context) error {
	count, err := s.menu.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed menu: %w", err)
	}
	if count > 0 {
		s.logger.Info("Menu already present (%d items), skipping", count)
		return nil
	}

	for i := range DefaultMenu {
		item := DefaultMenu[i]
		if _, err := s.menu.Create(ctx, &item); err != nil {
			return fmt.Errorf("seed menu: %w", err)
		}
	}
	s.logger.Info("Created %d menu items", len(DefaultMenu))
	return nil
}
