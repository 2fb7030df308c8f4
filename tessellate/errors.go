package tessellate

import (
	"errors"

	"github.com/CarlosKeese/NOVA-CAD/kerrors"
)

var errFaceHasHoles = errors.New("face has inner loops; boundary ear-clipping handles a single outer ring only")
