package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Panel() PanelRepository
	Close() error
}
