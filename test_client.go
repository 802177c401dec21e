package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const baseURL = "http://localhost:8080/api/v1"

// sampleRequest небольшой маршрут для проверки работающего сервера
const sampleRequest = `{
  "stripPrefix": true,
  "segments": [
    {"title": "2 - Ridge", "distance": 4200, "gain": 310, "loss": 45, "surface": "rock"},
    {"title": "1 - Trailhead", "distance": 1609.344, "gain": 100, "loss": 0},
    {"title": "10 - Lake", "distance": 2500, "gain": 20, "loss": 380}
  ]
}`

func main() {
	httpClient := &http.Client{Timeout: 2 * time.Minute}

	// Проверяем health endpoint
	fmt.Println("Проверяем health endpoint...")
	resp, err := httpClient.Get(baseURL + "/health")
	if err != nil {
		fmt.Printf("Ошибка при обращении к health endpoint: %v\n", err)
		return
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		fmt.Printf("Ошибка чтения ответа: %v\n", err)
		return
	}
	fmt.Printf("Health check ответ (статус %d):\n%s\n\n", resp.StatusCode, string(body))

	// С аргументом отправляем GeoJSON файл, без него встроенные сегменты
	path, payload := "/spreadsheets", []byte(sampleRequest)
	if len(os.Args) > 1 {
		doc, err := os.ReadFile(os.Args[1])
		if err != nil {
			fmt.Printf("Ошибка чтения файла: %v\n", err)
			return
		}
		payload, err = json.Marshal(map[string]any{
			"geojson":     json.RawMessage(doc),
			"elevation":   true,
			"stripPrefix": true,
		})
		if err != nil {
			fmt.Printf("Ошибка подготовки запроса: %v\n", err)
			return
		}
		path = "/spreadsheets/geojson"
	} else {
		fmt.Println("Для построения таблицы из GeoJSON запустите: go run test_client.go <путь_к_geojson>")
	}

	if err := printSpreadsheet(httpClient, path, payload); err != nil {
		fmt.Printf("Ошибка при построении таблицы: %v\n", err)
	}
}

func printSpreadsheet(httpClient *http.Client, path string, payload []byte) error {
	resp, err := httpClient.Post(baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("ошибка отправки запроса: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("сервер вернул %d: %s", resp.StatusCode, string(body))
	}

	var table struct {
		Columns []struct {
			Name string `json:"name"`
		} `json:"columns"`
		Rows     [][]any  `json:"rows"`
		Warnings []string `json:"warnings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&table); err != nil {
		return fmt.Errorf("ошибка разбора ответа: %w", err)
	}

	names := make([]string, len(table.Columns))
	for i, column := range table.Columns {
		names[i] = column.Name
	}
	fmt.Println(strings.Join(names, " | "))
	for _, row := range table.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if cell != nil {
				cells[i] = fmt.Sprint(cell)
			}
		}
		fmt.Println(strings.Join(cells, " | "))
	}
	for _, warning := range table.Warnings {
		fmt.Printf("Предупреждение: %s\n", warning)
	}
	return nil
}
