// internal/model/user.go
package model

import "time"

type User struct {
    ID         int       `db:"id" json:"id"`
    Email      string    `db:"email" json:"email"`
    Password   string    `db:"password" json:"-"`
    SMTPUser   string    `db:"smtp_user" json:"smtp_user"`
    SMTPPass   string    `db:"smtp_pass" json:"-"`
    SMTPHost   string    `db:"smtp_host" json:"smtp_host"`
    SMTPPort   int       `db:"smtp_port" json:"smtp_port"`
    DailyLimit int       `db:"daily_limit" json:"daily_limit"`
    UsedToday  int       `db:"used_today" json:"used_today"`
    LastReset  time.Time `db:"last_reset" json:"last_reset"`
    CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
