package schedule

// readyItem - система, у которой не осталось невыполненных зависимостей
type readyItem struct {
	node     int // индекс системы в стадии
	Priority int // порядок регистрации. Чем меньше, тем раньше.
	Index    int // индекс в куче
}

// readyQueue реализует heap.Interface: MinHeap по порядку регистрации
type readyQueue []*readyItem

func (pq readyQueue) Len() int { return len(pq) }

func (pq readyQueue) Less(i, j int) bool {
	return pq[i].Priority < pq[j].Priority
}

func (pq readyQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *readyQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*readyItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *readyQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.Index = -1 // для безопасности
	*pq = old[0 : n-1]
	return item
}
