package models

import "fmt"

// NetworkError ошибка транспорта или неуспешный статус внешнего сервиса
type NetworkError struct {
	Service string
	Status  string // статус ответа, пустой при ошибке транспорта
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("запрос к %s завершился ошибкой: %s", e.Service, e.Status)
	}
	return fmt.Sprintf("запрос к %s завершился ошибкой: %v", e.Service, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError тело ответа внешнего сервиса не удалось разобрать
type ParseError struct {
	Service string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ошибка разбора ответа %s: %v", e.Service, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// AlignmentError количество ответов не совпадает с количеством запросов
type AlignmentError struct {
	Expected int
	Got      int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("ожидалось %d наблюдений, получено %d", e.Expected, e.Got)
}

// ValidationError некорректные входные данные
type ValidationError struct {
	Index  int // позиция элемента во входной последовательности, -1 если неприменимо
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("элемент %d: поле %s: %s", e.Index, e.Field, e.Reason)
	}
	return fmt.Sprintf("поле %s: %s", e.Field, e.Reason)
}
