package savegame

// The ordered field lists for the three persistable kinds. These are the
// wire format: reordering, adding, or removing an entry changes the stream
// layout, and Version must be bumped when that happens.

var entityFields = []Field{
	{Name: "inuse", Path: "InUse", Kind: KindBool},
	{Name: "classname", Path: "ClassName", Kind: KindString},
	{Name: "spawnflags", Path: "SpawnFlags", Kind: KindInt},

	{Name: "origin", Path: "Origin", Kind: KindVector},
	{Name: "angles", Path: "Angles", Kind: KindVector},
	{Name: "velocity", Path: "Velocity", Kind: KindVector},
	{Name: "movedir", Path: "MoveDir", Kind: KindVector},
	{Name: "mins", Path: "Mins", Kind: KindVector},
	{Name: "maxs", Path: "Maxs", Kind: KindVector},

	{Name: "speed", Path: "Speed", Kind: KindFloat},
	{Name: "accel", Path: "Accel", Kind: KindFloat},
	{Name: "decel", Path: "Decel", Kind: KindFloat},
	{Name: "mass", Path: "Mass", Kind: KindInt},
	{Name: "gravity", Path: "Gravity", Kind: KindFloat},

	{Name: "health", Path: "Health", Kind: KindInt},
	{Name: "max_health", Path: "MaxHealth", Kind: KindInt},
	{Name: "takedamage", Path: "TakeDamage", Kind: KindBool},
	{Name: "deadflag", Path: "DeadFlag", Kind: KindInt},
	{Name: "dmg", Path: "Damage", Kind: KindInt},

	{Name: "message", Path: "Message", Kind: KindString},
	{Name: "target", Path: "Target", Kind: KindString},
	{Name: "targetname", Path: "TargetName", Kind: KindString},
	{Name: "killtarget", Path: "KillTarget", Kind: KindString},
	{Name: "pathtarget", Path: "PathTarget", Kind: KindString},
	{Name: "team", Path: "Team", Kind: KindString},

	{Name: "wait", Path: "Wait", Kind: KindFloat},
	{Name: "delay", Path: "Delay", Kind: KindFloat},
	{Name: "random", Path: "Random", Kind: KindFloat},
	{Name: "timestamp", Path: "Timestamp", Kind: KindFloat},

	{Name: "nextthink", Path: "NextThink", Kind: KindFloat},
	{Name: "think", Path: "Think", Kind: KindFunc},
	{Name: "touch", Path: "Touch", Kind: KindFunc},
	{Name: "use", Path: "Use", Kind: KindFunc},
	{Name: "pain", Path: "Pain", Kind: KindFunc},
	{Name: "die", Path: "Die", Kind: KindFunc},

	{Name: "move", Path: "Move", Kind: KindMove},
	{Name: "moveframe", Path: "MoveFrame", Kind: KindInt},

	{Name: "owner", Path: "Owner", Kind: KindEntity},
	{Name: "enemy", Path: "Enemy", Kind: KindEntity},
	{Name: "oldenemy", Path: "OldEnemy", Kind: KindEntity},
	{Name: "activator", Path: "Activator", Kind: KindEntity},
	{Name: "goalentity", Path: "Goal", Kind: KindEntity},
	{Name: "movetarget", Path: "MoveTarget", Kind: KindEntity},
	{Name: "chain", Path: "Chain", Kind: KindEntity},
	{Name: "teamchain", Path: "TeamChain", Kind: KindEntity},
	{Name: "teammaster", Path: "TeamMaster", Kind: KindEntity},

	{Name: "client", Path: "Client", Kind: KindClient},
	{Name: "item", Path: "Item", Kind: KindItem},

	{Name: "lip", Path: "Lip", Kind: KindInt, Flags: FlagSpawnTemp},
	{Name: "distance", Path: "Distance", Kind: KindInt, Flags: FlagSpawnTemp},
	{Name: "height", Path: "Height", Kind: KindInt, Flags: FlagSpawnTemp},

	{Name: "index", Path: "Index", Kind: KindIgnore},
	{Name: "linked", Path: "Linked", Kind: KindIgnore},
	{Name: "linkcount", Path: "LinkCount", Kind: KindIgnore},
	{Name: "gridcell", Path: "GridCell", Kind: KindIgnore},
}

var clientFields = []Field{
	{Name: "netname", Path: "Pers.UserName", Kind: KindString},
	{Name: "connected", Path: "Pers.Connected", Kind: KindBool},
	{Name: "health", Path: "Pers.Health", Kind: KindInt},
	{Name: "max_health", Path: "Pers.MaxHealth", Kind: KindInt},
	{Name: "score", Path: "Pers.Score", Kind: KindInt},
	{Name: "selected_item", Path: "Pers.SelectedItem", Kind: KindItem},
	{Name: "savedflags", Path: "Pers.SavedFlags", Kind: KindInt},

	{Name: "index", Path: "Index", Kind: KindIgnore},
	{Name: "ping", Path: "Ping", Kind: KindIgnore},
	{Name: "showscores", Path: "ShowScores", Kind: KindIgnore},
}

var levelFields = []Field{
	{Name: "framenum", Path: "FrameNum", Kind: KindInt},
	{Name: "time", Path: "Time", Kind: KindFloat},

	{Name: "level_name", Path: "LevelName", Kind: KindString},
	{Name: "mapname", Path: "MapName", Kind: KindString},
	{Name: "nextmap", Path: "NextMap", Kind: KindString},
	{Name: "changemap", Path: "ChangeMap", Kind: KindString},

	{Name: "intermissiontime", Path: "IntermissionTime", Kind: KindFloat},
	{Name: "exitintermission", Path: "ExitIntermission", Kind: KindBool},

	{Name: "sight_client", Path: "SightClient", Kind: KindEntity},
	{Name: "sight_entity", Path: "SightEntity", Kind: KindEntity},
	{Name: "sight_entity_framenum", Path: "SightEntityFrame", Kind: KindInt},
	{Name: "sound_entity", Path: "SoundEntity", Kind: KindEntity},
	{Name: "sound_entity_framenum", Path: "SoundEntityFrame", Kind: KindInt},

	{Name: "total_secrets", Path: "TotalSecrets", Kind: KindInt},
	{Name: "found_secrets", Path: "FoundSecrets", Kind: KindInt},
	{Name: "total_goals", Path: "TotalGoals", Kind: KindInt},
	{Name: "found_goals", Path: "FoundGoals", Kind: KindInt},
	{Name: "total_monsters", Path: "TotalMonsters", Kind: KindInt},
	{Name: "killed_monsters", Path: "KilledMonsters", Kind: KindInt},

	{Name: "body_que", Path: "BodyQue", Kind: KindInt},

	{Name: "fog_active", Path: "FogActive", Kind: KindBool},
	{Name: "fog_density", Path: "FogDensity", Kind: KindFloat},
	{Name: "fog_goal", Path: "FogGoal", Kind: KindFloat},
	{Name: "fog_color", Path: "FogColor", Kind: KindVector},

	// Tick-loop scratch, meaningless outside a running frame.
	{Name: "current_entity", Path: "CurrentEntity", Kind: KindIgnore},
}
