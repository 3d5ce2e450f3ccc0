package gaze

// sensorState is the capability record of a sensor: a single penetration
// scalar in [0, 1].
type sensorState struct {
	penetration LerpValue
}

// NewSensor creates a dwell sensor. While penetrated its penetration rises
// with sensorPenetrationIncreaseDuration, otherwise it falls with
// sensorPenetrationDecreaseDuration. Every tick the penetration is above
// zero a SENSOR_PENETRATED notification carrying the value is enqueued.
func NewSensor(id, style, icon string) *Element {
	e := &Element{
		ID:          id,
		StyleName:   style,
		Kind:        KindSensor,
		interactive: newInteractive(HitBox{}),
		icon:        &iconState{source: icon},
		sensor:      &sensorState{},
	}
	elementDefaults(e)
	return e
}

// Penetration returns the current penetration of a sensor, or 0.
func (e *Element) Penetration() float64 {
	if e.sensor == nil {
		return 0
	}
	return e.sensor.penetration.Value()
}

func (e *Element) updateSensor(dt float64, in *Input) float64 {
	cfg := e.config()
	if e.penetratedByInput(in) {
		e.interactive.highlighted = false
		e.sensor.penetration.Update(dt / cfg.SensorPenetrationIncreaseDuration)
	} else {
		e.sensor.penetration.Update(-dt / cfg.SensorPenetrationDecreaseDuration)
	}
	if p := e.sensor.penetration.Value(); p > 0 {
		e.enqueue(NotifySensorPenetrated, p)
	}
	return 0
}

// penetrateSensor snaps the penetration by amount instead of ramping.
func (e *Element) penetrateSensor(amount float64) {
	e.sensor.penetration.Update(amount)
	e.interactive.highlighted = false
}

func (e *Element) drawSensor(r Renderer) {
	p := e.params()
	p.Penetration = e.sensor.penetration.Value()
	p.Icon = e.icon.source
	e.drawShape(r, ShapeQuad, p)
	e.drawHighlight(r, ShapeQuad)
}
