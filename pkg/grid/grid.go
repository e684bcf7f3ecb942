package grid

// GetGridCoords maps a linear cell index to (x, y) coordinates in a grid
// with the given number of columns.
func GetGridCoords(index int, cols int) (int, int) {
	return index % cols, index / cols
}
