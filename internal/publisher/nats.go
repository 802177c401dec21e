// Package publisher отправляет события обработки в NATS.
package publisher

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"route-spreadsheet-go/internal/service"
)

type NATSPublisher struct {
	nc      *nats.Conn
	prefix  string
	metrics PublisherMetrics
	logger  *logrus.Logger
}

type PublisherMetrics interface {
	NATSPublishedInc()
	NATSPublishErrInc()
	PublishObserve(d time.Duration)
	NATSSetConnected(connected bool)
}

// NewNATSPublisher подключается к NATS. События публикуются в тему prefix.<runID>.
func NewNATSPublisher(url, prefix string, m PublisherMetrics, logger *logrus.Logger) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("route-spreadsheet"),
		nats.DisconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			logger.Warn("Соединение с NATS потеряно")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(true)
			}
			logger.Info("Соединение с NATS восстановлено")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			logger.Info("Соединение с NATS закрыто")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	if m != nil {
		m.NATSSetConnected(true)
	}
	return &NATSPublisher{nc: nc, prefix: prefix, metrics: m, logger: logger}, nil
}

func (p *NATSPublisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		p.nc.Close()
	}
}

// Observe публикует событие. Publish буферизуется клиентом и не ждет сервер,
// ошибка только пишется в лог.
func (p *NATSPublisher) Observe(event service.Event) {
	if err := p.publish(event); err != nil {
		p.logger.WithError(err).WithField("run_id", event.RunID).Warn("Не удалось опубликовать событие в NATS")
	}
}

func (p *NATSPublisher) publish(event service.Event) error {
	b, err := json.Marshal(event)
	if err != nil {
		return err
	}
	start := time.Now()
	err = p.nc.Publish(Subject(p.prefix, event.RunID), b)
	if p.metrics != nil {
		p.metrics.PublishObserve(time.Since(start))
		if err != nil {
			p.metrics.NATSPublishErrInc()
		} else {
			p.metrics.NATSPublishedInc()
		}
	}
	return err
}

// Subject возвращает тему для событий обработки runID.
// Префикс может содержать точки, идентификатор становится одним токеном.
func Subject(prefix, runID string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), ".")
	if prefix == "" {
		return subjectToken(runID)
	}
	return fmt.Sprintf("%s.%s", prefix, subjectToken(runID))
}

func subjectToken(s string) string {
	s = strings.TrimSpace(s)
	// токен NATS не может содержать пробелы, '>', '*' и точки
	repl := strings.NewReplacer(" ", "_", ".", "_", ">", "_", "*", "_", "/", "_", "\t", "_")
	s = repl.Replace(s)
	if s == "" {
		s = "_"
	}
	return s
}
