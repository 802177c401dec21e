package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"route-spreadsheet-go/pkg/models"

	"github.com/sirupsen/logrus"
)

const elevationServiceName = "сервису высот"

// ElevationClient клиент сервиса, добавляющего высоты в GeoJSON
type ElevationClient struct {
	url        string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewElevationClient создает новый клиент сервиса высот.
// Таймаут не задается, длительность запроса ограничивает контекст вызывающего кода.
func NewElevationClient(server string, port int, protocol string, logger *logrus.Logger) *ElevationClient {
	return &ElevationClient{
		url:        fmt.Sprintf("%s://%s:%d/", protocol, server, port),
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// URL возвращает адрес сервиса
func (c *ElevationClient) URL() string {
	return c.url
}

// Augment отправляет геометрию маршрута и возвращает ее с высотами.
// Выполняется ровно один запрос, без повторов.
func (c *ElevationClient) Augment(ctx context.Context, doc models.GeoJSON) (models.GeoJSON, error) {
	c.logger.Debugf("Отправка POST запроса на %s", c.url)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания HTTP запроса: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &models.NetworkError{Service: elevationServiceName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &models.NetworkError{Service: elevationServiceName, Status: resp.Status}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.NetworkError{Service: elevationServiceName, Err: fmt.Errorf("ошибка чтения ответа: %w", err)}
	}

	var enriched json.RawMessage
	if err := json.Unmarshal(respBody, &enriched); err != nil {
		return nil, &models.ParseError{Service: elevationServiceName, Err: err}
	}

	c.logger.Infof("Получен ответ сервиса высот: %d байт", len(enriched))
	return models.GeoJSON(enriched), nil
}
