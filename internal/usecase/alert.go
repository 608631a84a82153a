package usecase

import (
	"context"
	"log/slog"
	"strings"

	"go.uber.org/fx"

	"github.com/phan14/du-an-ss2/internal/adapter/telegram"
	domainErrors "github.com/phan14/du-an-ss2/internal/domain/errors"
	"github.com/phan14/du-an-ss2/internal/domain/model"
	"github.com/phan14/du-an-ss2/internal/domain/repository"
	"github.com/phan14/du-an-ss2/internal/domain/urgency"
)

// Dispatcher sends text to the Telegram chat stored in settings.
type Dispatcher struct {
	settings repository.SettingsRepository
	client   telegram.Client
}

// NewDispatcher constructs Dispatcher.
func NewDispatcher(settings repository.SettingsRepository, client telegram.Client) *Dispatcher {
	return &Dispatcher{settings: settings, client: client}
}

// Send delivers text synchronously. Failures are *errors.DispatchError.
func (d *Dispatcher) Send(ctx context.Context, text string) error {
	cfg, err := d.settings.TelegramConfig(ctx)
	if err != nil {
		return &domainErrors.DispatchError{Err: err}
	}
	return d.client.Send(ctx, cfg, text)
}

// AlertQueue accepts messages for asynchronous delivery.
type AlertQueue interface {
	Enqueue(orderID, text string) bool
}

// AlertUseCase fires one-time deadline notices and manages the alert channel settings.
type AlertUseCase struct {
	orders     repository.OrderRepository
	customers  repository.CustomerRepository
	settings   repository.SettingsRepository
	notifier   *urgency.Notifier
	queue      AlertQueue
	dispatcher *Dispatcher
	calendar   Calendar
	logger     *slog.Logger
}

// AlertDeps groups AlertUseCase collaborators.
type AlertDeps struct {
	fx.In

	Orders     repository.OrderRepository
	Customers  repository.CustomerRepository
	Settings   repository.SettingsRepository
	Notifier   *urgency.Notifier
	Queue      AlertQueue
	Dispatcher *Dispatcher
	Calendar   Calendar
	Logger     *slog.Logger
}

// NewAlertUseCase constructs AlertUseCase.
func NewAlertUseCase(d AlertDeps) *AlertUseCase {
	return &AlertUseCase{
		orders:     d.Orders,
		customers:  d.Customers,
		settings:   d.Settings,
		notifier:   d.Notifier,
		queue:      d.Queue,
		dispatcher: d.Dispatcher,
		calendar:   d.Calendar,
		logger:     d.Logger,
	}
}

// Scan loads every order and queues notices for orders newly entering an alert tier.
// It returns the alerts raised by this call.
func (u *AlertUseCase) Scan(ctx context.Context) ([]urgency.Alert, error) {
	orders, customers, err := loadOrderBook(ctx, u.orders, u.customers)
	if err != nil {
		return nil, err
	}
	return u.Observe(orders, customers), nil
}

// Observe evaluates an already loaded order collection.
func (u *AlertUseCase) Observe(orders []model.Order, customers []model.Customer) []urgency.Alert {
	alerts := u.notifier.Evaluate(orders, u.calendar.Today())
	if len(alerts) == 0 {
		return nil
	}
	names := customerNames(customers)
	for _, a := range alerts {
		text := alertMessage(a.Tier, u.facts(a.Order, a.DaysRemaining, names))
		if !u.queue.Enqueue(a.Order.ID, text) {
			u.logger.Warn("alert queue full, notice dropped",
				slog.String("order_id", a.Order.ID), slog.String("tier", string(a.Tier)))
		}
	}
	u.logger.Info("deadline alerts raised", slog.Int("count", len(alerts)))
	return alerts
}

// Reset starts a new notification session; every order may alert again.
func (u *AlertUseCase) Reset() {
	u.notifier.Reset()
}

// Report sends an urgent notice for one order right away.
func (u *AlertUseCase) Report(ctx context.Context, id string) error {
	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return err
	}
	name := unknownCustomerName
	if c, err := u.customers.Get(ctx, order.CustomerID); err == nil {
		name = c.Name
	}
	days := urgency.DaysRemaining(order.Deadline, u.calendar.Today())
	f := alertFacts{order: *order, customer: name, days: days, loc: u.calendar.Location()}
	return u.dispatcher.Send(ctx, urgentMessage(f))
}

func (u *AlertUseCase) TelegramConfig(ctx context.Context) (model.TelegramConfig, error) {
	return u.settings.TelegramConfig(ctx)
}

// SaveTelegramConfig stores the bot token and chat id. Both are required.
func (u *AlertUseCase) SaveTelegramConfig(ctx context.Context, cfg model.TelegramConfig) error {
	cfg.BotToken = strings.TrimSpace(cfg.BotToken)
	cfg.ChatID = strings.TrimSpace(cfg.ChatID)
	if cfg.BotToken == "" {
		return domainErrors.Invalid("botToken", domainErrors.ErrRequired)
	}
	if cfg.ChatID == "" {
		return domainErrors.Invalid("chatId", domainErrors.ErrRequired)
	}
	return u.settings.SaveTelegramConfig(ctx, cfg)
}

// Test sends a probe message synchronously.
func (u *AlertUseCase) Test(ctx context.Context) error {
	return u.dispatcher.Send(ctx, "✅ <b>Kết nối Telegram thành công!</b>\nHệ thống sẽ gửi cảnh báo đơn hàng vào nhóm này.")
}

func (u *AlertUseCase) facts(o model.Order, days int, names map[string]string) alertFacts {
	name, ok := names[o.CustomerID]
	if !ok {
		name = unknownCustomerName
	}
	return alertFacts{order: o, customer: name, days: days, loc: u.calendar.Location()}
}

func customerNames(customers []model.Customer) map[string]string {
	names := make(map[string]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}
	return names
}
