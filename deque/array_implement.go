package deque

import (
	"sync"

	"pipeheat/model"
)

// 环形数组实现
type ArrDeque struct {
	mu sync.RWMutex

	arr []model.Snapshot
	// 头部下标
	start int
	// 元素个数
	size int
	// 容量
	capacity int
}

// 工厂方法
func NewArrDeque(capacity int) *ArrDeque {
	if capacity < 1 {
		capacity = 1
	}
	return &ArrDeque{
		arr:      make([]model.Snapshot, capacity),
		capacity: capacity,
	}
}

func (ad *ArrDeque) Size() int {
	ad.mu.RLock()
	defer ad.mu.RUnlock()
	return ad.size
}

func (ad *ArrDeque) Get(i int) model.Snapshot {
	ad.mu.RLock()
	defer ad.mu.RUnlock()
	if i < 0 || i >= ad.size {
		panic("deque: index out of range")
	}
	return ad.arr[(ad.start+i)%ad.capacity]
}

func (ad *ArrDeque) Traverse(f func(i int, item *model.Snapshot)) {
	ad.mu.RLock()
	defer ad.mu.RUnlock()
	for i := 0; i < ad.size; i++ {
		f(i, &ad.arr[(ad.start+i)%ad.capacity])
	}
}

// 满时覆盖最旧的元素
func (ad *ArrDeque) AddLast(item model.Snapshot) {
	ad.mu.Lock()
	defer ad.mu.Unlock()
	end := (ad.start + ad.size) % ad.capacity
	ad.arr[end] = item
	if ad.size == ad.capacity {
		ad.start = (ad.start + 1) % ad.capacity
		return
	}
	ad.size++
}

func (ad *ArrDeque) RemoveFirst() (model.Snapshot, bool) {
	ad.mu.Lock()
	defer ad.mu.Unlock()
	if ad.size == 0 {
		return model.Snapshot{}, false
	}
	item := ad.arr[ad.start]
	ad.arr[ad.start] = model.Snapshot{}
	ad.start = (ad.start + 1) % ad.capacity
	ad.size--
	return item, true
}

func (ad *ArrDeque) IsFull() bool {
	ad.mu.RLock()
	defer ad.mu.RUnlock()
	return ad.size == ad.capacity
}

func (ad *ArrDeque) IsEmpty() bool {
	ad.mu.RLock()
	defer ad.mu.RUnlock()
	return ad.size == 0
}
