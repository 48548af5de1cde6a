package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Jalpan25/sweetshop-management-system/internal/auth"
	"github.com/Jalpan25/sweetshop-management-system/internal/client"
	httpclient "github.com/Jalpan25/sweetshop-management-system/internal/client/http"
	"github.com/Jalpan25/sweetshop-management-system/internal/config"
	"github.com/Jalpan25/sweetshop-management-system/internal/inventory"
	"github.com/Jalpan25/sweetshop-management-system/internal/logging"
	"github.com/Jalpan25/sweetshop-management-system/internal/observability"
	"github.com/Jalpan25/sweetshop-management-system/internal/search"
	"github.com/Jalpan25/sweetshop-management-system/internal/session"
	"github.com/Jalpan25/sweetshop-management-system/internal/stock"
	"github.com/Jalpan25/sweetshop-management-system/internal/store"
	"github.com/Jalpan25/sweetshop-management-system/internal/ux"
)

// App содержит все зависимости клиента
type App struct {
	logger       *zap.Logger
	sessions     *session.Store
	authService  *auth.Service
	api          *httpclient.Client
	store        *store.Store
	otelShutdown func(context.Context) error
}

// Build собирает граф зависимостей клиента
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := logging.New(logging.Config{
		Env:    string(cfg.AppEnv),
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	if err != nil {
		return nil, err
	}
	cfg.Log(logger)

	otelShutdown, err := observability.Init(ctx, observability.Config{
		Enabled:               cfg.OTELEnabled,
		OTLPEndpoint:          cfg.OTLPEndpoint,
		SamplingRatio:         cfg.SamplingRatio,
		ServiceName:           "sweetshop-cli",
		DeploymentEnvironment: string(cfg.AppEnv),
	})
	if err != nil {
		return nil, err
	}

	sessions := session.NewStore(cfg.SessionFile)

	// Токен читается из хранилища на каждый запрос:
	// вход в рамках этого же процесса сразу виден клиенту API
	token := func() string {
		sess, err := sessions.Load()
		if err != nil {
			return ""
		}
		return sess.Token
	}

	api := httpclient.New(cfg.APIBaseURL, cfg.HTTPTimeout, token, logger)

	return &App{
		logger:       logger,
		sessions:     sessions,
		authService:  auth.NewService(api, sessions, logger),
		api:          api,
		store:        store.New(api, stock.Default, logger),
		otelShutdown: otelShutdown,
	}, nil
}

// Close останавливает телеметрию и сбрасывает логи
func (a *App) Close(ctx context.Context) {
	if err := a.otelShutdown(ctx); err != nil {
		a.logger.Warn("Telemetry shutdown failed", zap.Error(err))
	}
	logging.Sync(a.logger)
}

// SignIn запрашивает учётные данные и выполняет вход
func (a *App) SignIn(ctx context.Context) error {
	email, password, err := ux.Credentials()
	if err != nil {
		return err
	}

	sess, err := a.authService.SignIn(ctx, email, password)
	if err != nil {
		return a.classify(err)
	}

	who := sess.User.Name
	if who == "" {
		who = sess.User.Email
	}
	ux.Successf("Welcome back, %s", who)
	return nil
}

// SignUp запрашивает данные и регистрирует пользователя
func (a *App) SignUp(ctx context.Context) error {
	name, email, password, role, err := ux.RegisterForm()
	if err != nil {
		return err
	}

	if err := a.authService.SignUp(ctx, name, email, password, role); err != nil {
		return a.classify(err)
	}
	ux.Successf("Registered %s, you can sign in now", email)
	return nil
}

// SignOut завершает сессию
func (a *App) SignOut() error {
	if err := a.authService.SignOut(); err != nil {
		return err
	}
	ux.Successf("Signed out")
	return nil
}

// Dashboard загружает витрину и печатает её со сводкой
func (a *App) Dashboard(ctx context.Context) error {
	ctx, sess, err := a.requireSession(ctx)
	if err != nil {
		return err
	}

	sweets, err := a.store.Load(ctx)
	if err != nil {
		return a.classify(err)
	}

	// Сводка по складу интересна менеджеру
	if sess.User.Role.IsManager() {
		fmt.Println(ux.RenderSummary(a.store.Summary()))
	}
	fmt.Print(ux.RenderSweets(sweets, stock.Default))
	return nil
}

// Search применяет фильтры и печатает результат
// Пустые критерии дают полный список
func (a *App) Search(ctx context.Context, raw search.RawCriteria) error {
	ctx, _, err := a.requireSession(ctx)
	if err != nil {
		return err
	}

	sweets, err := a.store.ApplyFilter(ctx, search.Normalize(raw))
	if err != nil {
		return a.classify(err)
	}
	fmt.Print(ux.RenderSweets(sweets, stock.Default))
	return nil
}

// Buy покупает указанное количество товара
// При quantity <= 0 количество запрашивается интерактивно
func (a *App) Buy(ctx context.Context, id string, quantity int) error {
	ctx, _, err := a.requireSession(ctx)
	if err != nil {
		return err
	}

	if _, err := a.store.Load(ctx); err != nil {
		return a.classify(err)
	}

	if quantity <= 0 {
		current, ok := a.findSweet(id)
		if !ok {
			return store.ErrSweetUnknown
		}
		quantity, err = ux.QuantityPrompt("Quantity to purchase", stock.Default.PurchaseCeiling(current.Quantity))
		if err != nil {
			return err
		}
	}

	updated, err := a.store.SubmitOperation(ctx, inventory.Operation{
		Mode:     inventory.ModePurchase,
		SweetID:  id,
		Quantity: quantity,
	})
	if err != nil {
		return a.classify(err)
	}

	ux.Successf("Purchased %d x %s, %d left in stock", quantity, updated.Name, updated.Quantity)
	return nil
}

// Restock пополняет склад (операция менеджера)
func (a *App) Restock(ctx context.Context, id string, quantity int) error {
	ctx, _, err := a.requireSession(ctx)
	if err != nil {
		return err
	}

	if _, err := a.store.Load(ctx); err != nil {
		return a.classify(err)
	}

	if quantity <= 0 {
		quantity, err = ux.QuantityPrompt("Quantity to restock", 0)
		if err != nil {
			return err
		}
	}

	updated, err := a.store.SubmitOperation(ctx, inventory.Operation{
		Mode:     inventory.ModeRestock,
		SweetID:  id,
		Quantity: quantity,
	})
	if err != nil {
		return a.classify(err)
	}

	ux.Successf("Restocked %s, now %d in stock", updated.Name, updated.Quantity)
	return nil
}

// AddSweet создаёт новый товар (операция менеджера)
func (a *App) AddSweet(ctx context.Context) error {
	ctx, sess, err := a.requireSession(ctx)
	if err != nil {
		return err
	}
	if !sess.User.Role.IsManager() {
		return inventory.ErrUnauthorized
	}

	input, err := ux.SweetForm(inventory.SweetInput{})
	if err != nil {
		return err
	}

	created, err := a.api.Create(ctx, input)
	if err != nil {
		return a.classify(err)
	}
	ux.Successf("Added %s (id %s)", created.Name, created.ID)
	return nil
}

// UpdateSweet редактирует существующий товар (операция менеджера)
func (a *App) UpdateSweet(ctx context.Context, id string) error {
	ctx, sess, err := a.requireSession(ctx)
	if err != nil {
		return err
	}
	if !sess.User.Role.IsManager() {
		return inventory.ErrUnauthorized
	}

	if _, err := a.store.Load(ctx); err != nil {
		return a.classify(err)
	}
	current, ok := a.findSweet(id)
	if !ok {
		return store.ErrSweetUnknown
	}

	input, err := ux.SweetForm(inventory.SweetInput{
		Name:     current.Name,
		Category: current.Category,
		Price:    current.Price,
		Quantity: current.Quantity,
	})
	if err != nil {
		return err
	}

	updated, err := a.api.Update(ctx, id, input)
	if err != nil {
		return a.classify(err)
	}
	ux.Successf("Updated %s", updated.Name)
	return nil
}

// DeleteSweet удаляет товар (операция менеджера)
func (a *App) DeleteSweet(ctx context.Context, id string) error {
	ctx, sess, err := a.requireSession(ctx)
	if err != nil {
		return err
	}
	if !sess.User.Role.IsManager() {
		return inventory.ErrUnauthorized
	}

	if err := a.api.Delete(ctx, id); err != nil {
		return a.classify(err)
	}
	ux.Successf("Deleted sweet %s", id)
	return nil
}

// requireSession загружает сохранённую сессию и кладёт её в контекст
func (a *App) requireSession(ctx context.Context) (context.Context, session.Session, error) {
	sess, err := a.sessions.Load()
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return ctx, session.Session{}, errors.New("not signed in, run 'sweetshop login' first")
		}
		return ctx, session.Session{}, err
	}
	return session.WithSession(ctx, sess), sess, nil
}

// classify переводит ошибки API в сообщения для пользователя
// Протухшая авторизация сносит сессию и отправляет на вход;
// доменные отказы сервера показываются дословно;
// сетевые проблемы дают общий повторяемый текст
func (a *App) classify(err error) error {
	if errors.Is(err, client.ErrAuthExpired) {
		if clearErr := a.sessions.Clear(); clearErr != nil {
			a.logger.Warn("Failed to clear session", zap.Error(clearErr))
		}
		return errors.New("your session has expired, please run 'sweetshop login' again")
	}

	var serverErr *client.ServerError
	if errors.As(err, &serverErr) {
		return errors.New(serverErr.Error())
	}

	var transportErr *client.TransportError
	if errors.As(err, &transportErr) {
		a.logger.Error("API unreachable", zap.Error(err))
		return errors.New("sweet shop API is unreachable, please try again")
	}

	return err
}

func (a *App) findSweet(id string) (inventory.Sweet, bool) {
	for _, s := range a.store.Items() {
		if s.ID == id {
			return s, true
		}
	}
	return inventory.Sweet{}, false
}
