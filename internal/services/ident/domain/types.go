// Package domain defines the types and interfaces for the identity registrar
package domain

import "time"

// Messages returned to callers
const (
	MsgRegistered = "Uspešno registrovan korisnik."
	MsgExists     = "Korisnik već postoji."
)

// Identity is a registered user of a company
type Identity struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Company      string    `json:"firma"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterInput is the /register body
type RegisterInput struct {
	Email    string `json:"email"    validate:"required,email,max=254" example:"ana@firma.rs"`
	Password string `json:"password" validate:"required,max=72"        example:"tajna-lozinka"`
	Company  string `json:"firma"    validate:"required,max=200"       example:"Firma d.o.o."`
}

// MessageResponse is a bare {"message"} body
type MessageResponse struct {
	Message string `json:"message" example:"Uspešno registrovan korisnik."`
}
