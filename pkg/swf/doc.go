// Package swf defines the decoded movie model consumed by the transcoder.
//
// The binary record decoder lives outside this repository. Its output is a
// header plus an ordered list of typed records, exchanged as JSON:
//
//	{
//	  "header": {
//	    "frame_size": {"x_min": 0, "x_max": 11000, "y_min": 0, "y_max": 8000},
//	    "frame_rate": 6144,
//	    "frame_count": 1
//	  },
//	  "tags": [
//	    {"type": "SetBackgroundColor", "color": {"r": 255, "g": 255, "b": 255}},
//	    {"type": "DefineShape", "id": 1, "shape": {...}},
//	    {"type": "PlaceObject", "depth": 1, "character_id": 1},
//	    {"type": "ShowFrame"}
//	  ]
//	}
//
// Coordinates are in twips (1/20 pixel). Fixed-point values (the frame rate
// and matrix scale/skew factors) are carried as their raw integer encodings
// and converted with shift/mask arithmetic by [Ufixed8P8.Float64] and
// [Sfixed16P16.Float64].
//
// Records that the decoder could not classify arrive as [Unknown] with their
// tag code and raw body. Record types this package does not know decode to
// [Unsupported] so that a scan can skip them with a diagnostic.
package swf
