package game

// Statically-declared move scripts. Entities hold these by pointer; the move
// registry maps the pointers to the names in tables.go.

var walkerFramesStand = []MoveFrame{
	{AI: aiStand},
	{AI: aiStand},
	{AI: aiStand},
	{AI: aiStand},
}

var walkerMoveStand = MoveScript{
	FirstFrame: 0,
	LastFrame:  3,
	Frames:     walkerFramesStand,
}

var walkerFramesWalk = []MoveFrame{
	{AI: aiWalk, Dist: 4},
	{AI: aiWalk, Dist: 6},
	{AI: aiWalk, Dist: 6},
	{AI: aiWalk, Dist: 4},
	{AI: aiWalk, Dist: 2},
}

var walkerMoveWalk = MoveScript{
	FirstFrame: 10,
	LastFrame:  14,
	Frames:     walkerFramesWalk,
}

var walkerMoveDeath = MoveScript{
	FirstFrame: 20,
	LastFrame:  22,
	Frames: []MoveFrame{
		{},
		{},
		{},
	},
	EndFunc: bodyFade,
}
