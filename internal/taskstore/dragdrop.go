package taskstore

import "github.com/nodebucket/nodebucket/internal/employee"

// ListName names one of the two task lists.
type ListName string

const (
	Todo ListName = "todo"
	Done ListName = "done"
)

// DropEvent describes a finished drag: the task at FromIndex in From was
// dropped at ToIndex in To. From and To may be the same list.
type DropEvent struct {
	From      ListName
	FromIndex int
	To        ListName
	ToIndex   int
}

func clamp(i, hi int) int {
	if i < 0 {
		return 0
	}
	if i > hi {
		return hi
	}
	return i
}

// MoveItem moves the element at from to position to within list, in place.
// Indices are clamped to the list bounds.
func MoveItem(list []employee.Task, from, to int) {
	if len(list) == 0 {
		return
	}
	from = clamp(from, len(list)-1)
	to = clamp(to, len(list)-1)
	if from == to {
		return
	}
	item := list[from]
	if from < to {
		copy(list[from:to], list[from+1:to+1])
	} else {
		copy(list[to+1:from+1], list[to:from])
	}
	list[to] = item
}

// TransferItem removes the element at from in src and inserts it at to in
// dst, returning both new slices. to is clamped to [0, len(dst)].
func TransferItem(src, dst []employee.Task, from, to int) ([]employee.Task, []employee.Task) {
	if len(src) == 0 {
		return src, dst
	}
	from = clamp(from, len(src)-1)
	to = clamp(to, len(dst))
	item := src[from]

	newSrc := make([]employee.Task, 0, len(src)-1)
	newSrc = append(newSrc, src[:from]...)
	newSrc = append(newSrc, src[from+1:]...)

	newDst := make([]employee.Task, 0, len(dst)+1)
	newDst = append(newDst, dst[:to]...)
	newDst = append(newDst, item)
	newDst = append(newDst, dst[to:]...)
	return newSrc, newDst
}
