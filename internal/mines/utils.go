package mines

// celltodo is a LIFO worklist of linear cell indices.
type celltodo struct {
	items []int
}

func (std *celltodo) push(i int) {
	std.items = append(std.items, i)
}

func (std *celltodo) pop() (int, bool) {
	n := len(std.items)
	if n == 0 {
		return 0, false
	}
	i := std.items[n-1]
	std.items = std.items[:n-1]
	return i, true
}
