package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"route-spreadsheet-go/pkg/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	daymetServiceName = "Daymet"
	daymetVariables   = "dayl,prcp,srad,swe,tmax,tmin,vp"
)

// DaymetClient клиент single-pixel API Daymet
type DaymetClient struct {
	baseURL     string
	concurrency int
	httpClient  *http.Client
	logger      *logrus.Logger
}

// daymetResponse ответ single-pixel API.
// Ключи data содержат единицы измерения, например "tmax (deg c)".
type daymetResponse struct {
	Data map[string][]float64 `json:"data"`
}

// NewDaymetClient создает новый клиент Daymet
func NewDaymetClient(baseURL string, concurrency int, logger *logrus.Logger) *DaymetClient {
	if concurrency < 1 {
		concurrency = 1
	}
	return &DaymetClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		concurrency: concurrency,
		httpClient:  &http.Client{},
		logger:      logger,
	}
}

// Augment запрашивает наблюдения для каждого запроса.
// Результат выровнен по позиции запроса. Первая ошибка отменяет остальные запросы.
func (c *DaymetClient) Augment(ctx context.Context, queries []models.Query) ([]models.Observation, error) {
	c.logger.Infof("Запрос климатических данных для %d точек", len(queries))

	observations := make([]models.Observation, len(queries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, query := range queries {
		g.Go(func() error {
			observation, err := c.observe(ctx, query)
			if err != nil {
				return fmt.Errorf("запрос %d: %w", i, err)
			}
			observations[i] = observation
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.logger.Errorf("Ошибка при обращении к Daymet: %v", err)
		return nil, err
	}

	c.logger.Info("Климатические данные получены")
	return observations, nil
}

func (c *DaymetClient) observe(ctx context.Context, query models.Query) (models.Observation, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(query.Lat, 'f', 6, 64))
	params.Set("lon", strconv.FormatFloat(query.Long, 'f', 6, 64))
	params.Set("vars", daymetVariables)
	params.Set("start", query.Date)
	params.Set("end", query.Date)
	params.Set("format", "json")
	endpoint := fmt.Sprintf("%s/single-pixel/api/data?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.Observation{}, fmt.Errorf("ошибка создания HTTP запроса: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debugf("Отправка GET запроса на %s", endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Observation{}, &models.NetworkError{Service: daymetServiceName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Observation{}, &models.NetworkError{Service: daymetServiceName, Status: resp.Status}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Observation{}, &models.NetworkError{Service: daymetServiceName, Err: fmt.Errorf("ошибка чтения ответа: %w", err)}
	}

	var parsed daymetResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return models.Observation{}, &models.ParseError{Service: daymetServiceName, Err: err}
	}
	if parsed.Data == nil {
		return models.Observation{}, &models.ParseError{Service: daymetServiceName, Err: fmt.Errorf("в ответе нет поля data")}
	}

	return toObservation(parsed.Data), nil
}

// toObservation берет первое значение каждой переменной, отсутствующие остаются пустыми
func toObservation(data map[string][]float64) models.Observation {
	values := make(map[string]models.Measure, len(data))
	for key, series := range data {
		name, _, _ := strings.Cut(key, " ")
		if len(series) > 0 {
			values[name] = models.Some(series[0])
		}
	}
	return models.Observation{
		DayLength:     values["dayl"],
		Precipitation: values["prcp"],
		Radiation:     values["srad"],
		SnowWater:     values["swe"],
		MaxTemp:       values["tmax"],
		MinTemp:       values["tmin"],
		VaporPressure: values["vp"],
	}
}
