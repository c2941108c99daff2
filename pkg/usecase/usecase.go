package usecase

// UseCases bundles the application logic handed to the HTTP controller.
type UseCases struct {
	OAuth     *OAuthUseCase
	Directory *DirectoryUseCase
	Event     *EventUseCase
}

// New assembles the use case bundle.
func New(oauth *OAuthUseCase, directory *DirectoryUseCase, event *EventUseCase) *UseCases {
	return &UseCases{
		OAuth:     oauth,
		Directory: directory,
		Event:     event,
	}
}
