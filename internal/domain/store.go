package domain

// Store — магазин из ответа getallstores. Колонка статуса — последняя
// в строке; старые деплои отдают 7 колонок, новые — 8.
type Store struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Phone       string `json:"phone"`
	LegalPerson string `json:"legal_person"`
	Active      bool   `json:"active"`
}

// Роли, которые сервер возвращает в ответе authorize.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

// Identity — результат авторизации. Role пустая при ответе "OK"
// (обычный покупатель), StoreID > 0 только у продавцов.
type Identity struct {
	UserID  int    `json:"user_id"`
	Login   string `json:"login"`
	Role    string `json:"role,omitempty"`
	StoreID int    `json:"store_id,omitempty"`
}
