package alphabeta

import "fmt"

func (k branchKind) String() string {
	switch k {
	case branchEqual:
		return "Equal"
	case branchBetter:
		return "Better"
	case branchWorse:
		return "Worse"
	}
	return fmt.Sprintf("branchKind(%d)", uint8(k))
}

func (b branch[F]) String() string {
	return fmt.Sprintf("%v(%v)", b.kind, b.fitness)
}

func (m miniMax[A, F]) String() string {
	switch m.outcome {
	case outcomeDeadEnd:
		return "DeadEnd"
	case outcomeOpen:
		return fmt.Sprintf("Open(%v, %v)", m.path, m.branch)
	default:
		return fmt.Sprintf("Terminated(%v, %v)", m.path, m.branch)
	}
}

func (c *candidate[A, F]) String() string {
	return fmt.Sprintf("{fitness: %v, path: %v}", c.fitness, c.path)
}

func (c *ctxt[G, P, A, F]) String() string {
	return fmt.Sprintf("ctxt={best: %v, unfinished: %v, terminated: %v, partial: %v, losing: %v}",
		c.best, c.unfinished, c.terminated, c.partiallyTerminated, c.losingAction)
}
