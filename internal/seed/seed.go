// Package seed loads demo data. All randomness comes from the caller's
// *rand.Rand so a given seed always produces the same rows.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/logger"
	"motorent-backoffice/internal/repository"
	"motorent-backoffice/internal/security"
)

//go:embed default.yaml
var defaultData []byte

type Employee struct {
	FullName string      `yaml:"full_name"`
	Email    string      `yaml:"email"`
	Phone    string      `yaml:"phone"`
	Role     domain.Role `yaml:"role"`
	Password string      `yaml:"password"`
}

type Category struct {
	Name          string `yaml:"name"`
	Description   string `yaml:"description"`
	DepositAmount string `yaml:"deposit_amount"`
}

type PriceList struct {
	Name       string `yaml:"name"`
	HourlyRate string `yaml:"hourly_rate"`
	DailyRate  string `yaml:"daily_rate"`
}

// Model is a motorbike make that generated bikes are drawn from.
type Model struct {
	Brand     string `yaml:"brand"`
	Model     string `yaml:"model"`
	Category  string `yaml:"category"`
	PriceList string `yaml:"price_list"`
}

type Discount struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Value       int      `yaml:"value"`
	Categories  []string `yaml:"categories"`
	Days        int      `yaml:"days"`
}

type Data struct {
	Employees  []Employee  `yaml:"employees"`
	Categories []Category  `yaml:"categories"`
	PriceLists []PriceList `yaml:"price_lists"`
	Models     []Model     `yaml:"models"`
	Discounts  []Discount  `yaml:"discounts"`
	Motorbikes int         `yaml:"motorbikes"`
	Customers  int         `yaml:"customers"`
}

// Default returns the bundled demo data set.
func Default() (*Data, error) {
	return Parse(defaultData)
}

func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &d, nil
}

type Repositories struct {
	Tx         repository.TxManager
	Employees  repository.EmployeeRepository
	Categories repository.CategoryRepository
	PriceLists repository.PriceListRepository
	Motorbikes repository.MotorbikeRepository
	Customers  repository.CustomerRepository
	Discounts  repository.DiscountRepository
}

type Summary struct {
	Employees  int
	Categories int
	PriceLists int
	Motorbikes int
	Customers  int
	Discounts  int
}

type Seeder struct {
	repos Repositories
	rng   *rand.Rand
	clock clockwork.Clock
}

func New(repos Repositories, rng *rand.Rand, clock clockwork.Clock) *Seeder {
	return &Seeder{repos: repos, rng: rng, clock: clock}
}

// Run inserts data in a single transaction.
func (s *Seeder) Run(ctx context.Context, data *Data) (*Summary, error) {
	txCtx, err := s.repos.Tx.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.repos.Tx.Rollback(txCtx)

	sum := &Summary{}

	for _, e := range data.Employees {
		hash, err := security.HashPassword(e.Password)
		if err != nil {
			return nil, err
		}
		emp := &domain.Employee{
			FullName:     e.FullName,
			Email:        strings.ToLower(e.Email),
			Phone:        e.Phone,
			Role:         e.Role,
			PasswordHash: hash,
			IsActive:     true,
		}
		if err := s.repos.Employees.Create(txCtx, emp); err != nil {
			return nil, fmt.Errorf("employee %s: %w", e.Email, err)
		}
		sum.Employees++
	}

	categories := make(map[string]int64, len(data.Categories))
	for _, c := range data.Categories {
		deposit, err := decimal.NewFromString(c.DepositAmount)
		if err != nil {
			return nil, fmt.Errorf("category %s: bad deposit: %w", c.Name, err)
		}
		cat := &domain.Category{Name: c.Name, Description: c.Description, DepositAmount: deposit}
		if err := s.repos.Categories.Create(txCtx, cat); err != nil {
			return nil, fmt.Errorf("category %s: %w", c.Name, err)
		}
		categories[c.Name] = cat.ID
		sum.Categories++
	}

	priceLists := make(map[string]int64, len(data.PriceLists))
	for _, p := range data.PriceLists {
		hourly, err := decimal.NewFromString(p.HourlyRate)
		if err != nil {
			return nil, fmt.Errorf("price list %s: bad hourly rate: %w", p.Name, err)
		}
		daily, err := decimal.NewFromString(p.DailyRate)
		if err != nil {
			return nil, fmt.Errorf("price list %s: bad daily rate: %w", p.Name, err)
		}
		pl := &domain.PriceList{Name: p.Name, HourlyRate: hourly, DailyRate: daily}
		if err := s.repos.PriceLists.Create(txCtx, pl); err != nil {
			return nil, fmt.Errorf("price list %s: %w", p.Name, err)
		}
		priceLists[p.Name] = pl.ID
		sum.PriceLists++
	}

	if len(data.Models) > 0 {
		plates := make(map[string]bool, data.Motorbikes)
		for i := 0; i < data.Motorbikes; i++ {
			m := data.Models[s.rng.Intn(len(data.Models))]
			categoryID, ok := categories[m.Category]
			if !ok {
				return nil, fmt.Errorf("model %s %s: unknown category %q", m.Brand, m.Model, m.Category)
			}
			priceListID, ok := priceLists[m.PriceList]
			if !ok {
				return nil, fmt.Errorf("model %s %s: unknown price list %q", m.Brand, m.Model, m.PriceList)
			}

			plate := s.licensePlate()
			for plates[plate] {
				plate = s.licensePlate()
			}
			plates[plate] = true

			bike := &domain.Motorbike{
				LicensePlate: plate,
				Brand:        m.Brand,
				Model:        m.Model,
				Year:         2018 + s.rng.Intn(7),
				Color:        colors[s.rng.Intn(len(colors))],
				CategoryID:   categoryID,
				PriceListID:  priceListID,
				Status:       domain.MotorbikeStatusAvailable,
			}
			if err := s.repos.Motorbikes.Create(txCtx, bike); err != nil {
				return nil, fmt.Errorf("motorbike %s: %w", plate, err)
			}
			sum.Motorbikes++
		}
	}

	idCards := make(map[string]bool, data.Customers)
	for i := 0; i < data.Customers; i++ {
		c := s.customer(i)
		for idCards[c.IDCardNumber] {
			c.IDCardNumber = s.digits(12)
		}
		idCards[c.IDCardNumber] = true
		if err := s.repos.Customers.Create(txCtx, c); err != nil {
			return nil, fmt.Errorf("customer %s: %w", c.FullName, err)
		}
		sum.Customers++
	}

	today := s.clock.Now().UTC().Truncate(24 * time.Hour)
	for _, d := range data.Discounts {
		ids := make([]int64, 0, len(d.Categories))
		for _, name := range d.Categories {
			id, ok := categories[name]
			if !ok {
				return nil, fmt.Errorf("discount %s: unknown category %q", d.Name, name)
			}
			ids = append(ids, id)
		}
		disc := &domain.Discount{
			Name:        d.Name,
			Description: d.Description,
			Value:       d.Value,
			StartDate:   today,
			EndDate:     today.AddDate(0, 0, d.Days),
			IsActive:    true,
			CategoryIDs: ids,
		}
		if err := s.repos.Discounts.Create(txCtx, disc); err != nil {
			return nil, fmt.Errorf("discount %s: %w", d.Name, err)
		}
		sum.Discounts++
	}

	if err := s.repos.Tx.Commit(txCtx); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "seed data loaded",
		"employees", sum.Employees,
		"categories", sum.Categories,
		"price_lists", sum.PriceLists,
		"motorbikes", sum.Motorbikes,
		"customers", sum.Customers,
		"discounts", sum.Discounts,
	)
	return sum, nil
}

var (
	familyNames = []string{"Nguyen", "Tran", "Le", "Pham", "Hoang", "Huynh", "Phan", "Vu", "Vo", "Dang", "Bui", "Do"}
	middleNames = []string{"Van", "Thi", "Minh", "Duc", "Ngoc", "Thanh", "Quoc", "Gia"}
	givenNames  = []string{"An", "Binh", "Chi", "Dung", "Giang", "Hanh", "Khoa", "Lan", "Linh", "Nam", "Phuc", "Quan", "Son", "Trang", "Tuan", "Vy"}
	districts   = []string{"District 1", "District 3", "Binh Thanh", "Phu Nhuan", "Thu Duc", "Go Vap", "Tan Binh"}
	colors      = []string{"Black", "White", "Red", "Blue", "Grey", "Silver"}
	plateSeries = []string{"A", "B", "C", "D", "F", "G", "H", "K", "L"}
)

func (s *Seeder) pick(list []string) string {
	return list[s.rng.Intn(len(list))]
}

func (s *Seeder) digits(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + s.rng.Intn(10)))
	}
	return b.String()
}

// licensePlate produces Ho Chi Minh City style plates such as "59A-12345".
func (s *Seeder) licensePlate() string {
	return fmt.Sprintf("%d%s-%s", 50+s.rng.Intn(10), s.pick(plateSeries), s.digits(5))
}

func (s *Seeder) customer(i int) *domain.Customer {
	family, middle, given := s.pick(familyNames), s.pick(middleNames), s.pick(givenNames)
	c := &domain.Customer{
		FullName:     fmt.Sprintf("%s %s %s", family, middle, given),
		Phone:        "09" + s.digits(8),
		IDCardNumber: s.digits(12),
		Address:      fmt.Sprintf("%d Le Loi, %s", 1+s.rng.Intn(300), s.pick(districts)),
	}
	// roughly two in three customers leave an email
	if s.rng.Intn(3) > 0 {
		c.Email = fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(given), strings.ToLower(family), i+1)
	}
	return c
}
