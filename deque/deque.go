/**
 *
 * 利用数组实现双端队列，用于保存温度场最近若干次迭代的快照
 * 容量固定，满了之后由调用方淘汰头部
 *
 */

package deque

import "platesim/model"

type Deque interface {
	// 队列的长度
	Size() int

	// 队列容量
	Capacity() int

	// 获取队列中对应下标的元素
	Get(i int) *model.Frame

	// 正向遍历
	Traverse(f func(i int, item *model.Frame))

	// 在队列结尾增加一个元素
	AddLast(item model.Frame) bool

	// 在队列头部删除一个元素
	RemoveFirst() (model.Frame, bool)

	IsFull() bool

	IsEmpty() bool
}
