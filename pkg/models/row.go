package models

// Row строка итоговой таблицы.
// Расстояния в милях, перепады высот в футах.
type Row struct {
	CumulativeDistance Measure `json:"cumulativeDistance"`
	From               string  `json:"from,omitempty"`
	To                 string  `json:"to,omitempty"`
	Location           string  `json:"location,omitempty"`
	Distance           Measure `json:"distance"`
	Gain               Measure `json:"gain"`
	Loss               Measure `json:"loss"`
	Description        string  `json:"description"`
	Users              string  `json:"users"`
	Surface            string  `json:"surface"`
	Locomotion         string  `json:"locomotion"`
}
