package render

type RegisterPageData struct {
	CSRFToken      string
	Name           string
	Email          string
	FormErrors     map[string]string
	ErrorMsg       string
	CaptchaSiteKey string
}

type RegisterPendingPageData struct {
	Email string
}

type LoginPageData struct {
	CSRFToken  string
	Email      string
	FormErrors map[string]string
	ErrorMsg   string
	InfoMsg    string
}

type HomePageData struct {
	CSRFToken string
	Name      string
	Email     string
}
