// Package seed fills an empty store with the baseline restaurant data.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"overcooked-restaurant/dish-svc/internal/domain"
	"overcooked-restaurant/dish-svc/internal/storage"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Data is the baseline data set. Rows reference each other by natural key:
// dishes and users by name, addresses by street.
type Data struct {
	Dishes    []DishSeed    `yaml:"dishes"`
	Users     []UserSeed    `yaml:"users"`
	Addresses []AddressSeed `yaml:"addresses"`
	Orders    []OrderSeed   `yaml:"orders"`
	Reviews   []ReviewSeed  `yaml:"reviews"`
}

type DishSeed struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Price       float64 `yaml:"price"`
	ImagePath   string  `yaml:"image_path"`
}

type UserSeed struct {
	Name string `yaml:"name"`
}

type AddressSeed struct {
	User       string `yaml:"user"`
	Street     string `yaml:"street"`
	City       string `yaml:"city"`
	PostalCode string `yaml:"postal_code"`
}

type OrderSeed struct {
	User            string          `yaml:"user"`
	Status          string          `yaml:"status"`
	IsDelivery      bool            `yaml:"is_delivery"`
	DeliveryAddress string          `yaml:"delivery_address"`
	DeliveryFee     float64         `yaml:"delivery_fee"`
	Items           []OrderItemSeed `yaml:"items"`
}

type OrderItemSeed struct {
	Dish     string `yaml:"dish"`
	Quantity int    `yaml:"quantity"`
}

type ReviewSeed struct {
	Dish    string `yaml:"dish"`
	User    string `yaml:"user"`
	Rating  int    `yaml:"rating"`
	Comment string `yaml:"comment"`
	DaysAgo int    `yaml:"days_ago"`
}

func Parse(raw []byte) (*Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &data, nil
}

// Defaults returns the embedded baseline data set.
func Defaults() (*Data, error) {
	return Parse(defaultsYAML)
}

type Seeder struct {
	opener storage.Opener
	data   *Data
	now    func() time.Time
}

func NewSeeder(opener storage.Opener, data *Data) *Seeder {
	return &Seeder{opener: opener, data: data, now: func() time.Time { return time.Now().UTC() }}
}

// Run inserts every entity group whose table is still empty. Parents are
// flushed before their children so generated ids can be resolved, which
// makes a failure in a later group leave earlier groups in place. Running it
// again over a seeded store changes nothing.
func (s *Seeder) Run(ctx context.Context) error {
	return storage.Run(ctx, s.opener, func(sess storage.Session) error {
		if err := s.seedDishes(ctx, sess); err != nil {
			return err
		}
		if err := s.seedUsers(ctx, sess); err != nil {
			return err
		}
		if err := sess.Flush(ctx); err != nil {
			return err
		}

		if err := s.seedAddresses(ctx, sess); err != nil {
			return err
		}
		if err := sess.Flush(ctx); err != nil {
			return err
		}

		if err := s.seedOrders(ctx, sess); err != nil {
			return err
		}
		return s.seedReviews(ctx, sess)
	})
}

func isEmpty(ctx context.Context, sess storage.Session, table storage.Table) (bool, error) {
	count, err := sess.Count(ctx, table)
	if err != nil {
		return false, err
	}
	if count > 0 {
		log.Info().Str("table", string(table)).Int("existing", count).Msg("seed: table not empty, skipping")
		return false, nil
	}
	return true, nil
}

func (s *Seeder) seedDishes(ctx context.Context, sess storage.Session) error {
	if empty, err := isEmpty(ctx, sess, storage.TableDishes); err != nil || !empty {
		return err
	}

	for _, d := range s.data.Dishes {
		dish := domain.Dish{Name: d.Name, Description: d.Description, Price: d.Price, ImagePath: d.ImagePath}
		if err := dish.Validate(); err != nil {
			return fmt.Errorf("seed dish %q: %w", d.Name, err)
		}
		if err := sess.InsertDish(ctx, &dish); err != nil {
			return err
		}
	}
	log.Info().Int("count", len(s.data.Dishes)).Msg("seed: dishes inserted")
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context, sess storage.Session) error {
	if empty, err := isEmpty(ctx, sess, storage.TableUsers); err != nil || !empty {
		return err
	}

	for _, u := range s.data.Users {
		user := domain.User{Name: u.Name}
		if err := user.Validate(); err != nil {
			return fmt.Errorf("seed user %q: %w", u.Name, err)
		}
		if err := sess.InsertUser(ctx, &user); err != nil {
			return err
		}
	}
	log.Info().Int("count", len(s.data.Users)).Msg("seed: users inserted")
	return nil
}

func (s *Seeder) seedAddresses(ctx context.Context, sess storage.Session) error {
	if empty, err := isEmpty(ctx, sess, storage.TableAddresses); err != nil || !empty {
		return err
	}

	refs, err := loadRefs(ctx, sess)
	if err != nil {
		return err
	}

	for _, a := range s.data.Addresses {
		userID, err := refs.user(a.User)
		if err != nil {
			return err
		}
		address := domain.Address{UserID: userID, Street: a.Street, City: a.City, PostalCode: a.PostalCode}
		if err := address.Validate(); err != nil {
			return fmt.Errorf("seed address %q: %w", a.Street, err)
		}
		if err := sess.InsertAddress(ctx, &address); err != nil {
			return err
		}
	}
	log.Info().Int("count", len(s.data.Addresses)).Msg("seed: addresses inserted")
	return nil
}

func (s *Seeder) seedOrders(ctx context.Context, sess storage.Session) error {
	if empty, err := isEmpty(ctx, sess, storage.TableOrders); err != nil || !empty {
		return err
	}

	refs, err := loadRefs(ctx, sess)
	if err != nil {
		return err
	}

	orders := make([]domain.Order, 0, len(s.data.Orders))
	for _, o := range s.data.Orders {
		order, err := s.buildOrder(o, refs)
		if err != nil {
			return err
		}
		if err := sess.InsertOrder(ctx, &order); err != nil {
			return err
		}
		orders = append(orders, order)
	}
	if err := sess.Flush(ctx); err != nil {
		return err
	}

	items := 0
	for _, order := range orders {
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
			if err := sess.InsertOrderItem(ctx, &order.Items[i]); err != nil {
				return err
			}
			items++
		}
	}
	log.Info().Int("count", len(orders)).Int("items", items).Msg("seed: orders inserted")
	return nil
}

func (s *Seeder) buildOrder(o OrderSeed, refs *refs) (domain.Order, error) {
	userID, err := refs.user(o.User)
	if err != nil {
		return domain.Order{}, err
	}

	status := domain.OrderStatus(o.Status)
	if !status.Valid() {
		return domain.Order{}, fmt.Errorf("seed order for %q: unknown status %q", o.User, o.Status)
	}

	order := domain.Order{
		UserID:     userID,
		OrderDate:  s.now(),
		Status:     status,
		IsDelivery: o.IsDelivery,
	}
	if o.IsDelivery {
		address, err := refs.address(o.DeliveryAddress)
		if err != nil {
			return domain.Order{}, err
		}
		order.DeliveryAddressID = &address.ID
		order.DeliveryFee = o.DeliveryFee
	}

	for _, it := range o.Items {
		dish, err := refs.dish(it.Dish)
		if err != nil {
			return domain.Order{}, err
		}
		order.Items = append(order.Items, domain.OrderItem{DishID: dish.ID, Quantity: it.Quantity, UnitPrice: dish.Price})
	}
	order.CalculateTotal()
	return order, nil
}

func (s *Seeder) seedReviews(ctx context.Context, sess storage.Session) error {
	if empty, err := isEmpty(ctx, sess, storage.TableReviews); err != nil || !empty {
		return err
	}

	refs, err := loadRefs(ctx, sess)
	if err != nil {
		return err
	}

	for _, r := range s.data.Reviews {
		dish, err := refs.dish(r.Dish)
		if err != nil {
			return err
		}
		userID, err := refs.user(r.User)
		if err != nil {
			return err
		}
		review := domain.Review{
			DishID:     dish.ID,
			UserID:     userID,
			Rating:     r.Rating,
			Comment:    r.Comment,
			ReviewDate: s.now().AddDate(0, 0, -r.DaysAgo),
		}
		if err := review.Validate(); err != nil {
			return fmt.Errorf("seed review of %q by %q: %w", r.Dish, r.User, err)
		}
		if err := sess.InsertReview(ctx, &review); err != nil {
			return err
		}
	}
	log.Info().Int("count", len(s.data.Reviews)).Msg("seed: reviews inserted")
	return nil
}

type refs struct {
	dishes    map[string]domain.Dish
	users     map[string]int
	addresses map[string]domain.Address
}

func loadRefs(ctx context.Context, sess storage.Session) (*refs, error) {
	dishes, err := sess.ListDishes(ctx)
	if err != nil {
		return nil, err
	}
	users, err := sess.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	r := &refs{
		dishes:    make(map[string]domain.Dish, len(dishes)),
		users:     make(map[string]int, len(users)),
		addresses: make(map[string]domain.Address),
	}
	userIDs := make([]int, 0, len(users))
	for _, d := range dishes {
		r.dishes[d.Name] = d
	}
	for _, u := range users {
		r.users[u.Name] = u.ID
		userIDs = append(userIDs, u.ID)
	}

	addresses, err := sess.ListAddresses(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	for _, a := range addresses {
		r.addresses[a.Street] = a
	}
	return r, nil
}

func (r *refs) dish(name string) (domain.Dish, error) {
	d, ok := r.dishes[name]
	if !ok {
		return domain.Dish{}, fmt.Errorf("seed: unknown dish %q", name)
	}
	return d, nil
}

func (r *refs) user(name string) (int, error) {
	id, ok := r.users[name]
	if !ok {
		return 0, fmt.Errorf("seed: unknown user %q", name)
	}
	return id, nil
}

func (r *refs) address(street string) (domain.Address, error) {
	a, ok := r.addresses[street]
	if !ok {
		return domain.Address{}, fmt.Errorf("seed: unknown address %q", street)
	}
	return a, nil
}
