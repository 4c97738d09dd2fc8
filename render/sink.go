package render

// Sink is the renderer-facing consumer of completed frames: the thing
// an external renderer or engine/devserver's broadcaster implements to
// receive a RenderFrameIR once per frame.
type Sink interface {
	Consume(frame RenderFrameIR) error
}
