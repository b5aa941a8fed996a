package calculator

// 时间层
// Previous: 上一内部时间步（或上一个已接受的时间步）的结果
// Current: 已接受的当前状态，只能通过 promote 被 Tentative 覆盖
// Tentative: 本时间步正在计算的结果
type Slot int

const (
	Previous Slot = iota
	Current
	Tentative
)

// 轴向温度序列，长度 N+1，下标 0 为入口边界
type axialField struct {
	slots [3][]float64
}

func newAxialField(sections int, initial float64) *axialField {
	a := &axialField{}
	for s := range a.slots {
		a.slots[s] = make([]float64, sections+1)
	}
	a.fill(initial)
	return a
}

func (a *axialField) get(s Slot) []float64 {
	return a.slots[s]
}

func (a *axialField) fill(v float64) {
	for s := range a.slots {
		for i := range a.slots[s] {
			a.slots[s][i] = v
		}
	}
}

func (a *axialField) copySlot(dst, src Slot) {
	copy(a.slots[dst], a.slots[src])
}

// 土壤网格 T[width][depth][length]，三个时间层
// width 0 为远场边界，depth 0 为地表，depth-1 为底部边界
type soilGrid struct {
	width  int
	depth  int
	length int
	slots  [3][]float64
}

func newSoilGrid(width, depth, length int) *soilGrid {
	g := &soilGrid{width: width, depth: depth, length: length}
	for s := range g.slots {
		g.slots[s] = make([]float64, width*depth*length)
	}
	return g
}

func (g *soilGrid) index(w, d, l int) int {
	return (l*g.depth+d)*g.width + w
}

func (g *soilGrid) get(s Slot, w, d, l int) float64 {
	return g.slots[s][g.index(w, d, l)]
}

func (g *soilGrid) set(s Slot, w, d, l int, v float64) {
	g.slots[s][g.index(w, d, l)] = v
}

// 所有时间层同时赋值，用于边界
func (g *soilGrid) setAll(w, d, l int, v float64) {
	i := g.index(w, d, l)
	for s := range g.slots {
		g.slots[s][i] = v
	}
}

// 在可推进区域内复制时间层：length >= 1，width >= 1，全部深度
func (g *soilGrid) copyRegion(dst, src Slot) {
	for l := 1; l < g.length; l++ {
		for d := 0; d < g.depth; d++ {
			start := g.index(1, d, l)
			end := g.index(g.width-1, d, l) + 1
			copy(g.slots[dst][start:end], g.slots[src][start:end])
		}
	}
}

// 收集参与松弛计算的节点，深度不含底部，宽度不含远场
func (g *soilGrid) relaxed(s Slot, buf []float64) []float64 {
	buf = buf[:0]
	for l := 0; l < g.length; l++ {
		for d := 0; d < g.depth-1; d++ {
			start := g.index(1, d, l)
			end := g.index(g.width-1, d, l) + 1
			buf = append(buf, g.slots[s][start:end]...)
		}
	}
	return buf
}

func (g *soilGrid) relaxedCount() int {
	return g.length * (g.depth - 1) * (g.width - 1)
}
