package notifier

type Presenter interface {
	Present(message string)
}

// Multi presents every message on each of its presenters, in order.
type Multi []Presenter

func (m Multi) Present(message string) {
	for _, p := range m {
		p.Present(message)
	}
}
