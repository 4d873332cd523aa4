// Package models содержит доменные структуры пользователя и подписки,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

// User представляет зарегистрированного пользователя системы.
//
// Идентификатор user_uuid — целочисленный, выдаётся счётчиком хранилища.
// Хэш пароля никогда не сериализуется в ответы.
type User struct {
	UserUUID     int    `bson:"user_uuid" json:"user_uuid"`
	FullName     string `bson:"full_name" json:"full_name"`
	Email        string `bson:"email" json:"email"`
	PhoneNo      string `bson:"phone_no" json:"phone_no"`
	NationalID   string `bson:"national_id,omitempty" json:"national_id,omitempty"`
	Role         int    `bson:"role" json:"role"`
	PasswordHash string `bson:"password" json:"-"`
	IsActive     bool   `bson:"is_active" json:"is_active"`
	IsStaff      bool   `bson:"is_staff" json:"is_staff"`
	IsAdmin      bool   `bson:"is_admin" json:"is_admin"`
	IsSuperuser  bool   `bson:"is_superuser" json:"is_superuser"`
	CreatedAt    string `bson:"created_at" json:"created_at"`
	UpdatedAt    string `bson:"updated_at" json:"updated_at"`
}

// DummyUser используется для приёма данных регистрации из JSON-запроса,
// прежде чем конвертировать их в User.
type DummyUser struct {
	FullName   string `json:"full_name" validate:"required,max=50"`            // Полное имя (до 50 символов)
	Email      string `json:"email" validate:"required,email"`                 // Электронная почта
	PhoneNo    string `json:"phone_no" validate:"required"`                    // Номер телефона
	NationalID string `json:"national_id" validate:"omitempty,len=12,numeric"` // Национальный идентификатор (12 цифр)
	Role       int    `json:"role" validate:"omitempty,gte=0"`                 // Роль пользователя
	Password   string `json:"password" validate:"required,min=6"`              // Пароль в открытом виде
}

// DummyUserUpdate используется для приёма данных частичного обновления профиля.
// Обновляются только перечисленные поля, остальные остаются нетронутыми.
type DummyUserUpdate struct {
	UserUUID int             `json:"user_uuid" validate:"required,gt=0"`
	UserData DummyUserFields `json:"user_data" validate:"required"`
}

// DummyUserFields необязательные поля профиля для частичного обновления.
type DummyUserFields struct {
	FullName   *string `json:"full_name,omitempty" validate:"omitempty,max=50"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNo    *string `json:"phone_no,omitempty" validate:"omitempty"`
	NationalID *string `json:"national_id,omitempty" validate:"omitempty,len=12,numeric"`
	Role       *int    `json:"role,omitempty" validate:"omitempty,gte=0"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

// Fields возвращает набор заполненных полей для $set-обновления.
func (f DummyUserFields) Fields() map[string]any {
	fields := make(map[string]any)
	if f.FullName != nil {
		fields["full_name"] = *f.FullName
	}
	if f.Email != nil {
		fields["email"] = *f.Email
	}
	if f.PhoneNo != nil {
		fields["phone_no"] = *f.PhoneNo
	}
	if f.NationalID != nil {
		fields["national_id"] = *f.NationalID
	}
	if f.Role != nil {
		fields["role"] = *f.Role
	}
	if f.IsActive != nil {
		fields["is_active"] = *f.IsActive
	}
	return fields
}
