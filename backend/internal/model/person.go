package model

import (
	"time"
)

// Person is the profile shared by users and admins
type Person struct {
	Name        string
	DateOfBirth *time.Time // nil when unknown
	Gender      string
	Location    Nested
	PhoneNumber string
	Email       string
}

// NewPerson builds a profile. The date of birth is copied and normalised to
// UTC milliseconds.
func NewPerson(name string, dateOfBirth *time.Time, gender string, location Nested, phoneNumber, email string) Person {
	if dateOfBirth != nil {
		dob := NormalizeTime(*dateOfBirth)
		dateOfBirth = &dob
	}
	return Person{
		Name:        name,
		DateOfBirth: dateOfBirth,
		Gender:      gender,
		Location:    location,
		PhoneNumber: phoneNumber,
		Email:       email,
	}
}

// Serialize returns the profile attributes. An unknown date of birth is an
// explicit null.
func (p Person) Serialize() Record {
	var dob interface{}
	if p.DateOfBirth != nil {
		dob = FormatTime(*p.DateOfBirth)
	}
	return Record{
		"name":        p.Name,
		"dateOfBirth": dob,
		"gender":      p.Gender,
		"location":    p.Location.Value(),
		"phoneNumber": p.PhoneNumber,
		"email":       p.Email,
	}
}

// PersonFromRecord is the inverse of Person.Serialize
func PersonFromRecord(r Record) (Person, error) {
	dob, err := getTime(r, "dateOfBirth")
	if err != nil {
		return Person{}, err
	}
	location, err := NestedFrom(r["location"])
	if err != nil {
		return Person{}, err
	}
	return NewPerson(getString(r, "name"), dob, getString(r, "gender"), location,
		getString(r, "phoneNumber"), getString(r, "email")), nil
}

// Date is a convenience for building a date-of-birth pointer
func Date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
