// internal/controller/auth_controller.go
package controller

import (
    "encoding/json"
    "net/http"
    "strings"

    "golang.org/x/crypto/bcrypt"

    "github.com/clout-botaa/saas-mailer/internal/model"
    "github.com/clout-botaa/saas-mailer/internal/repository"
)

type AuthController struct {
    Users repository.UserRepositoryInterface

    DefaultDailyLimit int
    DefaultSMTPHost   string
    DefaultSMTPPort   int
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
    var body struct {
        Email    string `json:"email"`
        Password string `json:"password"`
        SMTPUser string `json:"smtp_user"`
        SMTPPass string `json:"smtp_pass"`
        SMTPHost string `json:"smtp_host"`
        SMTPPort int    `json:"smtp_port"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        writeError(w, http.StatusBadRequest, "invalid body")
        return
    }

    body.Email = strings.TrimSpace(body.Email)
    if body.Email == "" || body.Password == "" || body.SMTPUser == "" || body.SMTPPass == "" {
        writeError(w, http.StatusBadRequest, "email, password, smtp_user and smtp_pass are required")
        return
    }

    hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
    if err != nil {
        writeError(w, http.StatusInternalServerError, err.Error())
        return
    }

    user := &model.User{
        Email:      body.Email,
        Password:   string(hash),
        SMTPUser:   body.SMTPUser,
        SMTPPass:   body.SMTPPass,
        SMTPHost:   body.SMTPHost,
        SMTPPort:   body.SMTPPort,
        DailyLimit: c.DefaultDailyLimit,
    }
    if user.SMTPHost == "" {
        user.SMTPHost = c.DefaultSMTPHost
    }
    if user.SMTPPort == 0 {
        user.SMTPPort = c.DefaultSMTPPort
    }

    if err := c.Users.Create(user); err != nil {
        writeError(w, http.StatusBadRequest, "could not register: "+err.Error())
        return
    }

    writeJSON(w, http.StatusOK, map[string]interface{}{
        "status": "success",
        "user":   user,
    })
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
    var body struct {
        Email    string `json:"email"`
        Password string `json:"password"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        writeError(w, http.StatusBadRequest, "invalid body")
        return
    }

    user, err := c.Users.GetByEmail(strings.TrimSpace(body.Email))
    if err != nil {
        writeError(w, http.StatusInternalServerError, err.Error())
        return
    }
    if user == nil {
        writeError(w, http.StatusUnauthorized, "invalid credentials")
        return
    }

    if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)) != nil {
        writeError(w, http.StatusUnauthorized, "invalid credentials")
        return
    }

    writeJSON(w, http.StatusOK, map[string]interface{}{
        "status": "success",
        "user":   user,
    })
}
