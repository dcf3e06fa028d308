package core

import "errors"

var (
	// ErrConfigMissing is returned by Initialize when the board config is
	// absent or unusable. The engine stays disabled.
	ErrConfigMissing = errors.New("board config missing")

	// ErrAlreadyInitialized is returned by a second Initialize call.
	ErrAlreadyInitialized = errors.New("engine already initialized")

	// ErrInvalidCoordinate marks a lookup outside the grid.
	ErrInvalidCoordinate = errors.New("coordinate outside grid")

	// ErrCellEmpty marks a lookup of an in-bounds cell with no tile.
	ErrCellEmpty = errors.New("cell is empty")

	// ErrAssetNotFound means the catalog has no entry for a key. The blast
	// resolver uses it to detect a layered tile's last layer.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrDegradedShuffle means a shuffle created fewer guaranteed matches
	// than its target because the tile pool ran out.
	ErrDegradedShuffle = errors.New("shuffle could not guarantee all matches")
)
