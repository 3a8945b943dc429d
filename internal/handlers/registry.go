package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler    *AuthHandler
	CompanyHandler *CompanyHandler
	SeekerHandler  *SeekerHandler
	BrowseHandler  *BrowseHandler
	FileHandler    *FileHandler
}
