package models

import "time"

// Gender values accepted by the seed_users table.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// DateLayout is the storage format for DATE columns.
const DateLayout = "2006-01-02"

// SeedUser is one synthetic row for the seed_users table. Rows are
// inserted once by the generator and never updated or deleted by it.
type SeedUser struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Email       string `db:"email"`
	Gender      string `db:"gender"`
	Phone       string `db:"phone"`
	Address     string `db:"address"`
	Username    string `db:"username"`
	DateOfBirth string `db:"date_of_birth"` // DateLayout
	SignupDate  string `db:"signup_date"`   // DateLayout
	IsActive    bool   `db:"is_active"`
}

// Account is a repository-managed account row in the accounts table.
// The password hash is opaque to this system and never serialized.
type Account struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	FullName     *string   `db:"full_name" json:"full_name,omitempty"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
	IsActive     bool      `db:"is_active" json:"is_active"`
}

// AccountPatch is a partial update for an [Account]. Nil fields are left
// unchanged. The struct doubles as the update allow-list: columns without
// a field here cannot be modified through Edit.
type AccountPatch struct {
	Email        *string
	FullName     *string
	PasswordHash *string
	IsActive     *bool
}

// Empty reports whether the patch modifies no fields.
func (p AccountPatch) Empty() bool {
	return p.Email == nil && p.FullName == nil && p.PasswordHash == nil && p.IsActive == nil
}
