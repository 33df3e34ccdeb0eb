package models

// WelcomeMessage — полезная нагрузка приветственного уведомления,
// публикуется при регистрации и потребляется воркером отправки писем.
type WelcomeMessage struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}
