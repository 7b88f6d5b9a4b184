package combat

// Cells are addressed by a flat index, row*width + col.

func manhattan(a, b, width int) int {
	ar, ac := a/width, a%width
	br, bc := b/width, b%width
	return abs(ar-br) + abs(ac-bc)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// around returns the in-bounds orthogonal neighbours of index in reading
// order: up, left, right, down. Only cells[:n] are valid.
func around(index, width, size int) (cells [4]int, n int) {
	col := index % width
	if index >= width {
		cells[n] = index - width
		n++
	}
	if col > 0 {
		cells[n] = index - 1
		n++
	}
	if col < width-1 {
		cells[n] = index + 1
		n++
	}
	if index+width < size {
		cells[n] = index + width
		n++
	}
	return cells, n
}
