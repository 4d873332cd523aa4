// Package timestamp задаёт формат строковых меток времени, в котором
// created_at/updated_at хранятся в документах.
//
// Метки проставляются в момент конструирования объекта в настроенной
// таймзоне, а не в момент записи в базу.
package timestamp

import "time"

// Layout формат хранения меток времени в документах.
const Layout = "2006-01-02 || 15:04:05.000000"

// Now возвращает текущую метку времени в заданной таймзоне.
func Now(loc *time.Location) string {
	return time.Now().In(loc).Format(Layout)
}
