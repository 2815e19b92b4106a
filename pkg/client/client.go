package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/jmoraes/catalogo/pkg/domain"
)

// CreateProductRequest is the payload for creating a product. The server
// assigns the id.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int             `json:"categoryId"`
}

// UpdateProductRequest is the payload for updating a product.
type UpdateProductRequest struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int             `json:"categoryId"`
}

// Client is the catalog API client. All calls except Login carry the
// session's bearer token; the token is sampled when the request is built,
// never validated locally. A rejected token surfaces as HTTP 401.
type Client struct {
	baseURL    string
	session    *Session
	httpClient *http.Client
	log        *logrus.Logger
}

// New creates a new API client bound to the given session. log receives a
// line per request and may be a discard logger.
func New(baseURL string, session *Session, log *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		session: session,
		log:     log,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Login exchanges credentials for a bearer token and stores it in the
// session. Any non-success status means the credentials were rejected.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var result struct {
		Token string `json:"token"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.post(ctx, "/auth/login", body, &result); err != nil {
		return fmt.Errorf("client.Login: %w", err)
	}
	if result.Token == "" {
		return fmt.Errorf("client.Login: response carried no token")
	}
	c.session.SetToken(result.Token)
	return nil
}

// ListCategories fetches all categories with their nested products.
// A 404 means no categories exist yet and yields an empty list.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.get(ctx, "/category", &categories); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("client.ListCategories: %w", err)
	}
	return categories, nil
}

// CreateCategory creates a new category.
func (c *Client) CreateCategory(ctx context.Context, name string) error {
	if err := c.post(ctx, "/category", map[string]string{"name": name}, nil); err != nil {
		return fmt.Errorf("client.CreateCategory: %w", err)
	}
	return nil
}

// UpdateCategory renames an existing category.
func (c *Client) UpdateCategory(ctx context.Context, id int, name string) error {
	body := map[string]any{"id": id, "name": name}
	if err := c.doRequest(ctx, http.MethodPut, "/category", body, nil); err != nil {
		return fmt.Errorf("client.UpdateCategory: %w", err)
	}
	return nil
}

// DeleteCategory deletes a category by id. The server cascade-deletes the
// category's products.
func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/category/"+strconv.Itoa(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteCategory: %w", err)
	}
	return nil
}

// PagedProducts fetches one page of products for a category. A 404 means
// the category has no products and yields an empty page.
func (c *Client) PagedProducts(ctx context.Context, pageNumber, pageSize, categoryID int) (*domain.ProductPage, error) {
	params := url.Values{}
	params.Set("pageNumber", strconv.Itoa(pageNumber))
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("categoryId", strconv.Itoa(categoryID))

	var page domain.ProductPage
	if err := c.get(ctx, "/product/paged?"+params.Encode(), &page); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return &domain.ProductPage{PageNumber: pageNumber, PageSize: pageSize}, nil
		}
		return nil, fmt.Errorf("client.PagedProducts: %w", err)
	}
	return &page, nil
}

// CreateProduct creates a new product.
func (c *Client) CreateProduct(ctx context.Context, req CreateProductRequest) error {
	if err := c.post(ctx, "/product", req, nil); err != nil {
		return fmt.Errorf("client.CreateProduct: %w", err)
	}
	return nil
}

// UpdateProduct updates an existing product.
func (c *Client) UpdateProduct(ctx context.Context, req UpdateProductRequest) error {
	if err := c.doRequest(ctx, http.MethodPut, "/product", req, nil); err != nil {
		return fmt.Errorf("client.UpdateProduct: %w", err)
	}
	return nil
}

// DeleteProduct deletes a product by id.
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/product/"+strconv.Itoa(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteProduct: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.session.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"method":     method,
			"path":       path,
			"request_id": requestID,
			"duration":   time.Since(start).String(),
		}).WithError(err).Debug("request failed")
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	c.log.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"status":     resp.StatusCode,
		"request_id": requestID,
		"duration":   time.Since(start).String(),
	}).Debug("request")

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErrs []struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErrs) == nil && len(apiErrs) > 0 {
			messages := make([]string, 0, len(apiErrs))
			for _, e := range apiErrs {
				messages = append(messages, e.Message)
			}
			return &ValidationError{StatusCode: resp.StatusCode, Messages: messages}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
