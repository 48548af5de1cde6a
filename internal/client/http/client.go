// Package httpclient реализует доступ к REST API магазина поверх net/http.
// Транспортные детали (JSON, заголовки, коды ответов) заканчиваются здесь:
// наружу уходят доменные модели и ошибки из пакета client.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Jalpan25/sweetshop-management-system/internal/client"
	"github.com/Jalpan25/sweetshop-management-system/internal/inventory"
	"github.com/Jalpan25/sweetshop-management-system/internal/observability"
	"github.com/Jalpan25/sweetshop-management-system/internal/session"
)

// Client - HTTP клиент API магазина
// Реализует интерфейсы store.SweetAPI и auth.AuthAPI
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      func() string // провайдер токена текущей сессии, "" = без авторизации
	logger     *zap.Logger
}

// New создаёт клиента API
// baseURL включает префикс /api; token вызывается на каждый запрос,
// чтобы клиент видел смену сессии без пересоздания
func New(baseURL string, timeout time.Duration, token func() string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: observability.NewTransport("sweetshop-cli", nil),
		},
		token:  token,
		logger: logger,
	}
}

// sweetDTO - представление товара на проводе
// Сервер отдаёт числовой id, в домене он остаётся непрозрачной строкой
type sweetDTO struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

func (d sweetDTO) domain() inventory.Sweet {
	return inventory.Sweet{
		ID:       strconv.FormatInt(d.ID, 10),
		Name:     d.Name,
		Category: d.Category,
		Price:    d.Price,
		Quantity: d.Quantity,
	}
}

type sweetRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// FetchAll возвращает полный список товаров
func (c *Client) FetchAll(ctx context.Context) ([]inventory.Sweet, error) {
	var dtos []sweetDTO
	if err := c.do(ctx, http.MethodGet, "/sweets", nil, nil, &dtos); err != nil {
		return nil, err
	}
	return toDomain(dtos), nil
}

// Search возвращает отфильтрованный список
// params передаются как query string как есть, сопоставление - на сервере
func (c *Client) Search(ctx context.Context, params map[string]string) ([]inventory.Sweet, error) {
	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	var dtos []sweetDTO
	if err := c.do(ctx, http.MethodGet, "/sweets/search", query, nil, &dtos); err != nil {
		return nil, err
	}
	return toDomain(dtos), nil
}

// Create создаёт товар (операция менеджера, право проверяет сервер)
func (c *Client) Create(ctx context.Context, in inventory.SweetInput) (inventory.Sweet, error) {
	var dto sweetDTO
	err := c.do(ctx, http.MethodPost, "/sweets", nil, sweetRequest(in), &dto)
	if err != nil {
		return inventory.Sweet{}, err
	}
	return dto.domain(), nil
}

// Update обновляет товар по id
func (c *Client) Update(ctx context.Context, id string, in inventory.SweetInput) (inventory.Sweet, error) {
	var dto sweetDTO
	err := c.do(ctx, http.MethodPut, "/sweets/"+url.PathEscape(id), nil, sweetRequest(in), &dto)
	if err != nil {
		return inventory.Sweet{}, err
	}
	return dto.domain(), nil
}

// Delete удаляет товар по id
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/sweets/"+url.PathEscape(id), nil, nil, nil)
}

// Purchase списывает quantity единиц товара
// Возвращает товар с авторитетным серверным остатком
func (c *Client) Purchase(ctx context.Context, id string, quantity int) (inventory.Sweet, error) {
	var dto sweetDTO
	err := c.do(ctx, http.MethodPost, "/sweets/"+url.PathEscape(id)+"/purchase", nil, quantityRequest{Quantity: quantity}, &dto)
	if err != nil {
		return inventory.Sweet{}, err
	}
	return dto.domain(), nil
}

// Restock добавляет quantity единиц товара
func (c *Client) Restock(ctx context.Context, id string, quantity int) (inventory.Sweet, error) {
	var dto sweetDTO
	err := c.do(ctx, http.MethodPost, "/sweets/"+url.PathEscape(id)+"/restock", nil, quantityRequest{Quantity: quantity}, &dto)
	if err != nil {
		return inventory.Sweet{}, err
	}
	return dto.domain(), nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Login аутентифицирует пользователя и возвращает сессию
func (c *Client) Login(ctx context.Context, email, password string) (session.Session, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		// 401 на логине - это неверные учётные данные, а не протухшая сессия
		if errors.Is(err, client.ErrAuthExpired) {
			return session.Session{}, &client.ServerError{
				StatusCode: http.StatusUnauthorized,
				Message:    "Invalid email or password",
			}
		}
		return session.Session{}, err
	}
	return session.Session{
		Token: resp.Token,
		User: session.User{
			Name:  resp.Name,
			Email: resp.Email,
			Role:  session.Role(resp.Role),
		},
	}, nil
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, name, email, password string, role session.Role) error {
	return c.do(ctx, http.MethodPost, "/auth/register", nil, registerRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     string(role),
	}, nil)
}

// do выполняет один запрос к API и классифицирует ошибки:
// сетевые проблемы → TransportError, 401 → ErrAuthExpired,
// остальные 4xx/5xx → ServerError с серверным сообщением
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	log := observability.L(ctx, c.logger)
	log.Debug("API request", zap.String("method", method), zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &client.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return client.ErrAuthExpired
	}
	if resp.StatusCode >= 400 {
		var e errorResponse
		data, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(data, &e) // тело может быть не JSON, тогда сообщение пустое
		log.Warn("API rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return &client.ServerError{StatusCode: resp.StatusCode, Message: e.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func toDomain(dtos []sweetDTO) []inventory.Sweet {
	sweets := make([]inventory.Sweet, 0, len(dtos))
	for _, d := range dtos {
		sweets = append(sweets, d.domain())
	}
	return sweets
}
