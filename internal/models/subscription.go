package models

// Period один оплаченный период подписки.
// Даты приходят строками в формате 2006-01-02 и хранятся как есть.
type Period struct {
	StartDate string `bson:"start_date" json:"start_date"`
	EndDate   string `bson:"end_date" json:"end_date"`
	Amount    int    `bson:"amount" json:"amount"`
	CreatedAt string `bson:"created_at" json:"created_at"`
	UpdatedAt string `bson:"updated_at" json:"updated_at"`
}

// Subscription запись подписки пользователя: ровно один документ на user_uuid
// с упорядоченной последовательностью периодов. Обновление добавляет период
// в конец последовательности, существующие периоды не меняются.
type Subscription struct {
	UserUUID  int      `bson:"user_uuid" json:"user_uuid"`
	Periods   []Period `bson:"subscription" json:"subscription"`
	CreatedAt string   `bson:"created_at" json:"created_at"`
	UpdatedAt string   `bson:"updated_at" json:"updated_at"`
}

// DummyPeriod используется для приёма периода подписки из JSON-запроса.
type DummyPeriod struct {
	StartDate string `json:"start_date" validate:"required"`   // Дата начала периода в формате 2006-01-02
	EndDate   string `json:"end_date" validate:"required"`     // Дата окончания периода в формате 2006-01-02
	Amount    int    `json:"amount" validate:"required,gt=0"` // Сумма (>0)
}

// DummySubscription используется для приёма данных создания подписки.
type DummySubscription struct {
	UserUUID int           `json:"user_uuid" validate:"required,gt=0"`
	Periods  []DummyPeriod `json:"subscription" validate:"required,min=1,dive"`
}

// DummySubscriptionUpdate используется для приёма данных добавления периода.
type DummySubscriptionUpdate struct {
	UserUUID int         `json:"user_uuid" validate:"required,gt=0"`
	UserData DummyPeriod `json:"user_data" validate:"required"`
}
