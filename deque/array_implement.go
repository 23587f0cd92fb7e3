package deque

import (
	"platesim/model"
)

type ArrDeque struct {
	arr ArrType

	// 头部元素所在下标
	start int
	// 元素个数
	size int
	// 容量
	capacity int
}

type ArrType []model.Frame

// 工厂方法
func NewArrDeque(capacity int) *ArrDeque {
	if capacity < 1 {
		capacity = 1
	}
	return &ArrDeque{
		arr:      make(ArrType, capacity),
		capacity: capacity,
	}
}

func (ad *ArrDeque) Size() int {
	return ad.size
}

func (ad *ArrDeque) Capacity() int {
	return ad.capacity
}

// 逻辑下标转换为数组下标
func (ad *ArrDeque) index(i int) int {
	return (ad.start + i) % ad.capacity
}

func (ad *ArrDeque) Get(i int) *model.Frame {
	if i < 0 || i >= ad.size {
		panic("index out of length")
	}
	return &ad.arr[ad.index(i)]
}

func (ad *ArrDeque) Traverse(f func(i int, item *model.Frame)) {
	for i := 0; i < ad.size; i++ {
		f(i, &ad.arr[ad.index(i)])
	}
}

func (ad *ArrDeque) AddLast(item model.Frame) bool {
	if ad.IsFull() {
		return false
	}
	ad.arr[ad.index(ad.size)] = item
	ad.size++
	return true
}

func (ad *ArrDeque) RemoveFirst() (model.Frame, bool) {
	if ad.IsEmpty() {
		return model.Frame{}, false
	}
	item := ad.arr[ad.start]
	ad.arr[ad.start] = model.Frame{}
	ad.start = (ad.start + 1) % ad.capacity
	ad.size--
	return item, true
}

func (ad *ArrDeque) IsFull() bool {
	return ad.size == ad.capacity
}

func (ad *ArrDeque) IsEmpty() bool {
	return ad.size == 0
}
