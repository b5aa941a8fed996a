/**
 *
 * 推送历史队列
 * 保存最近若干个时间步的推送数据，新连接的客户端可以先回放历史
 * 容量固定，满时从头部丢弃最旧的元素
 *
 */

package deque

import "pipeheat/model"

type Deque interface {
	// 队列的长度
	Size() int

	// 获取队列中对应下标的元素，0 为最旧
	Get(i int) model.Snapshot

	// 正向遍历
	Traverse(f func(i int, item *model.Snapshot))

	// 在队列结尾增加一个元素
	AddLast(item model.Snapshot)

	// 在队列头部删除一个元素
	RemoveFirst() (model.Snapshot, bool)

	IsFull() bool

	IsEmpty() bool
}
