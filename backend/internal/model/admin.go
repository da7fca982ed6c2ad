package model

import "sync"

// Admin is the administrative actor. Its authority is not enforced
// anywhere; the management methods only report acceptance.
type Admin struct {
	Person
}

// NewAdmin creates an admin with the given profile
func NewAdmin(person Person) *Admin {
	return &Admin{Person: person}
}

// ManageUser accepts any existing user
func (a *Admin) ManageUser(u *User) bool {
	return u != nil
}

// ManageHost accepts any existing host
func (a *Admin) ManageHost(host *User) bool {
	return host != nil
}

// ReviewRequest approves every request
func (a *Admin) ReviewRequest(requestID string) bool {
	return true
}

// AdminHolder carries the single admin of a process. Pass it to whatever
// needs the admin instead of reaching for a global.
type AdminHolder struct {
	mu    sync.Mutex
	admin *Admin
}

// NewAdminHolder returns a holder with no admin set
func NewAdminHolder() *AdminHolder {
	return &AdminHolder{}
}

// Init sets the admin on first call. Later calls return the existing admin
// and ignore person.
func (h *AdminHolder) Init(person Person) *Admin {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.admin == nil {
		h.admin = NewAdmin(person)
	}
	return h.admin
}

// Get returns the admin, creating one with an empty profile if none was set
func (h *AdminHolder) Get() *Admin {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.admin == nil {
		h.admin = NewAdmin(Person{})
	}
	return h.admin
}
