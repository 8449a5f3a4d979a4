package vault

import "time"

// Entry - зашифрованная запись в том виде, в котором она хранится
type Entry struct {
	ID              string
	UserID          string
	Title           string
	ServiceUsername string
	EncryptedSecret string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Credential - расшифрованные данные записи
type Credential struct {
	Title           string `json:"title"`
	ServiceUsername string `json:"service_username"`
	Password        string `json:"password"`
}

// Item - элемент списка. Err != nil означает, что запись повреждена
// и Password пуст; остальные элементы списка при этом доступны.
type Item struct {
	Credential
	UpdatedAt time.Time `json:"updated_at"`
	Err       error     `json:"-"`
}
