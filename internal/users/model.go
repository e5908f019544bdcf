package users

type User struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

func (u User) GetID() int64 {
	return u.ID
}

func (u User) WithID(id int64) User {
	u.ID = id
	return u
}

// Draft is a user that has not been given an id yet.
type Draft struct {
	Name        string
	DateOfBirth string
	Email       string
	PhoneNumber string
}

func (d Draft) user() User {
	return User{
		Name:        d.Name,
		DateOfBirth: d.DateOfBirth,
		Email:       d.Email,
		PhoneNumber: d.PhoneNumber,
	}
}

const (
	FieldName        = "name"
	FieldDateOfBirth = "dateOfBirth"
	FieldEmail       = "email"
	FieldPhoneNumber = "phoneNumber"
)
