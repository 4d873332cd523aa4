package models

// UserFilter параметры поиска пользователей, принимаемые из JSON-запроса.
// Разрешён только фиксированный набор полей, произвольные условия
// в хранилище не пропускаются.
type UserFilter struct {
	UserUUID *int    `json:"user_uuid,omitempty" validate:"omitempty,gt=0"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=50"`
	PhoneNo  *string `json:"phone_no,omitempty"`
	Role     *int    `json:"role,omitempty" validate:"omitempty,gte=0"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Fields возвращает заполненные условия фильтра.
func (f UserFilter) Fields() map[string]any {
	fields := make(map[string]any)
	if f.UserUUID != nil {
		fields["user_uuid"] = *f.UserUUID
	}
	if f.Email != nil {
		fields["email"] = *f.Email
	}
	if f.FullName != nil {
		fields["full_name"] = *f.FullName
	}
	if f.PhoneNo != nil {
		fields["phone_no"] = *f.PhoneNo
	}
	if f.Role != nil {
		fields["role"] = *f.Role
	}
	if f.IsActive != nil {
		fields["is_active"] = *f.IsActive
	}
	return fields
}
