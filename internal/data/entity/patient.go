package entity

type Patient struct {
	Base
	FullName string  `db:"full_name"`
	Email    string  `db:"email"`
	Phone    *string `db:"phone"`
}
