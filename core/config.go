package core

// DefaultRevenueSlotCount 是默认的正线运营名额：排序后前 N 列可用车投入载客运营。
const DefaultRevenueSlotCount = 15
