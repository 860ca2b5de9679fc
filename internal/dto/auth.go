package dto

// TokenRequest - запрос на получение пары токенов
type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse - пара токенов и данные вошедшего сотрудника
type TokenResponse struct {
	Access   string   `json:"access"`
	Refresh  string   `json:"refresh"`
	UserInfo UserInfo `json:"user_info"`
}

type UserInfo struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Avatar    *string `json:"avatar"`
	Position  *string `json:"position"`
	Expertise string  `json:"expertise"`
	Email     string  `json:"email"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type RefreshResponse struct {
	Access string `json:"access"`
}
