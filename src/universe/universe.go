package universe

type Universe interface {
	Status() Status
	Options() Options
	StateCh() chan Status
	AddTemplate(tmpl Template)
	SettleTemplate(name string) error
	SettleWithRandomData(roster []Roster) error
	Settle(placements []Placement) error
	RegisterViewer(v Viewer)
	Run()
	Stop()
	Step()
	Clear()
	Close()
}
