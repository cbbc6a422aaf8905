package entity

type Doctor struct {
	Base
	FullName        string  `db:"full_name"`
	Email           string  `db:"email"`
	Specialization  string  `db:"specialization"`
	ConsultationFee float64 `db:"consultation_fee"`
	Approved        bool    `db:"approved"`
}
