package dto

// LimitRequest límite para listados recientes (?limit=).
type LimitRequest struct {
	Limit int `query:"limit"`
}

// Normalize aplica el valor por defecto y el máximo.
func (r *LimitRequest) Normalize(def, max int) int {
	if r.Limit <= 0 {
		r.Limit = def
	}
	if r.Limit > max {
		r.Limit = max
	}
	return r.Limit
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
