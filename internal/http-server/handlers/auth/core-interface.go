package auth

type Core interface {
	Signup(name, email, password string) (string, error)
	Login(email, password string) (string, error)
}
