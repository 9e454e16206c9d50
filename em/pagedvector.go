// Package em implements the external-memory pointer-jumping decompressor
// of spec.md §4.L: a scan-pass algorithm that resolves chained LZSS
// references without ever following more than one hop per pass,
// bounded by the longest reference chain rather than the input size.
package em

// Error is the wrapper type for all errors specific to this package.
type Error string

func (e Error) Error() string { return "em: " + string(e) }

// PagedVector is the in-process stand-in for spec.md §4.L's STXXL-style
// paged vector: a plain growable slice, but carrying the same
// page-budget bookkeeping spec.md describes ("a driver memory budget
// (MiB) determines page count per vector") so a future on-disk backing
// could be dropped in behind this type without changing any caller.
// No pack repo vendors an actual external-memory/paged-vector library
// (see DESIGN.md), so this is intentionally the simplest structure that
// can carry that budget metadata honestly rather than a decoration over
// an unrelated on-disk KV store.
type PagedVector[T any] struct {
	items      []T
	pageBudget int // bytes this vector's pages are allowed to occupy in memory at once
}

// NewPagedVector creates a PagedVector with the given byte budget for
// resident pages — informational bookkeeping only in this in-memory
// rendition, but preserved as a first-class field rather than dropped,
// since a real paged backing would need it threaded through exactly
// this constructor.
func NewPagedVector[T any](pageBudget int) *PagedVector[T] {
	return &PagedVector[T]{pageBudget: pageBudget}
}

func (v *PagedVector[T]) Len() int        { return len(v.items) }
func (v *PagedVector[T]) Get(i int) T     { return v.items[i] }
func (v *PagedVector[T]) Set(i int, x T)  { v.items[i] = x }
func (v *PagedVector[T]) Append(x T)      { v.items = append(v.items, x) }
func (v *PagedVector[T]) Reset()          { v.items = v.items[:0] }
func (v *PagedVector[T]) PageBudget() int { return v.pageBudget }

// Slice exposes the backing slice directly for bulk sort/iteration —
// the paged-vector abstraction only needs to own allocation and budget
// accounting, not hide Go's native slice operations from its caller.
func (v *PagedVector[T]) Slice() []T { return v.items }

func (v *PagedVector[T]) SetSlice(s []T) { v.items = s }

// driverVectorCount is the "minimum five vectors" spec.md §4.L names:
// text_buffer, by_copy_to, by_copy_from, resolved, and one scratch
// vector DriverBudget reserves headroom for during a scan's resolved
// pass (tuple expansion before the scatter-write back into text_buffer).
const driverVectorCount = 5

// cacheFraction is the "roughly 31% of the budget to vector caches"
// spec.md §4.L names for a driver memory budget.
const cacheFraction = 0.31

// DriverBudget computes, from a total memory budget in MiB, the number
// of bytes each of the driver's vectors may keep resident and the bytes
// reserved for the external sort passes (the remainder).
func DriverBudget(totalMiB int) (perVectorBytes int, sortBytes int) {
	totalBytes := totalMiB * 1024 * 1024
	cacheBytes := int(float64(totalBytes) * cacheFraction)
	perVectorBytes = cacheBytes / driverVectorCount
	sortBytes = totalBytes - cacheBytes
	return perVectorBytes, sortBytes
}
